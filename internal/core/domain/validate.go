package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is counted in code points, not bytes.
const MaxNameLength = 255

// Input field names as they appear in request bodies.
const (
	FieldName       = "name"
	FieldCategoryID = "clothing_category_id"
	FieldIncrement  = "increment"
	FieldDecrement  = "decrement"
)

// Human-readable labels used in validation messages.
const (
	LabelGroupName  = "group name"
	LabelChildName  = "child name"
	LabelCategoryID = "clothing category id"
	LabelCategory   = "clothing category"
	LabelIncrement  = "increment"
	LabelDecrement  = "decrement"
)

func RequiredMessage(label string) string {
	return label + " is required"
}

func StringMessage(label string) string {
	return label + " must be a string"
}

func IntegerMessage(label string) string {
	return label + " must be an integer"
}

func MaxLengthMessage(label string, max int) string {
	return fmt.Sprintf("%s may not be greater than %d characters", label, max)
}

func MinMessage(label string, min int) string {
	return fmt.Sprintf("%s must be at least %d", label, min)
}

func ExistsMessage(label string) string {
	return fmt.Sprintf("the selected %s does not exist", label)
}

// NormalizeName trims raw and checks it is non-empty and at most
// MaxNameLength code points long.
func NormalizeName(label, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", NewValidationError(FieldName, RequiredMessage(label))
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", NewValidationError(FieldName, MaxLengthMessage(label, MaxNameLength))
	}
	return name, nil
}
