package domain

import "time"

type StockRecord struct {
	ID                 int64
	ChildID            int64
	ClothingCategoryID int64
	CurrentCount       int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// StockLine is one catalog entry in a child's stock view. StockRecordID is
// nil when the child has no record for the category yet.
type StockLine struct {
	Category      ClothingCategory
	CurrentCount  int
	StockRecordID *int64
}

type StockView struct {
	Child Child
	Lines []StockLine
}

// StockChange is the result of an increment or decrement.
type StockChange struct {
	Child    Child
	Record   StockRecord
	Category ClothingCategory
}

// JoinStock returns one line per category, in catalog order, filled from
// the matching record when there is one.
func JoinStock(categories []ClothingCategory, records []StockRecord) []StockLine {
	byCategory := make(map[int64]StockRecord, len(records))
	for _, r := range records {
		byCategory[r.ClothingCategoryID] = r
	}

	lines := make([]StockLine, 0, len(categories))
	for _, c := range categories {
		line := StockLine{Category: c}
		if r, ok := byCategory[c.ID]; ok {
			id := r.ID
			line.CurrentCount = r.CurrentCount
			line.StockRecordID = &id
		}
		lines = append(lines, line)
	}
	return lines
}
