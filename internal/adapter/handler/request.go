package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

var errInvalidBody = errors.New("invalid request body")

// bodyFields keeps each top-level JSON member raw so types can be checked
// per field.
type bodyFields map[string]json.RawMessage

func decodeBody(r *http.Request) (bodyFields, error) {
	var fields bodyFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return bodyFields{}, nil
		}
		return nil, errInvalidBody
	}
	return fields, nil
}

func (f bodyFields) raw(field string) (json.RawMessage, bool) {
	raw, ok := f[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// fieldChecker collects type errors for several fields before failing.
type fieldChecker struct {
	fields bodyFields
	errs   []domain.FieldError
}

func (c *fieldChecker) fail(field, message string) {
	c.errs = append(c.errs, domain.FieldError{Field: field, Message: message})
}

func (c *fieldChecker) str(field, label string) string {
	raw, ok := c.fields.raw(field)
	if !ok {
		c.fail(field, domain.RequiredMessage(label))
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		c.fail(field, domain.StringMessage(label))
		return ""
	}
	return s
}

func (c *fieldChecker) integer(field, label string) int64 {
	raw, ok := c.fields.raw(field)
	if !ok {
		c.fail(field, domain.RequiredMessage(label))
		return 0
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		c.fail(field, domain.IntegerMessage(label))
		return 0
	}
	v, err := n.Int64()
	if err != nil {
		c.fail(field, domain.IntegerMessage(label))
		return 0
	}
	return v
}

func (c *fieldChecker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return domain.NewValidationErrors(c.errs)
}

func decodeName(r *http.Request, label string) (string, error) {
	fields, err := decodeBody(r)
	if err != nil {
		return "", err
	}

	c := fieldChecker{fields: fields}
	name := c.str(domain.FieldName, label)
	return name, c.err()
}

type stockChangeRequest struct {
	CategoryID int64
	Amount     int
}

func decodeStockChange(r *http.Request, amountField, amountLabel string) (stockChangeRequest, error) {
	fields, err := decodeBody(r)
	if err != nil {
		return stockChangeRequest{}, err
	}

	c := fieldChecker{fields: fields}
	req := stockChangeRequest{
		CategoryID: c.integer(domain.FieldCategoryID, domain.LabelCategoryID),
		Amount:     int(c.integer(amountField, amountLabel)),
	}
	return req, c.err()
}

// childID parses the {id} path segment. Anything that is not an integer
// cannot name a child.
func childID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.ErrChildNotFound
	}
	return id, nil
}
