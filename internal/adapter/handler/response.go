package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

// Response is the envelope shared by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type childJSON struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type groupJSON struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	ShareToken string      `json:"share_token"`
	Children   []childJSON `json:"children"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type categoriesJSON struct {
	Categories []domain.ClothingCategory `json:"categories"`
}

type stockLineJSON struct {
	ClothingCategoryID int64                   `json:"clothing_category_id"`
	ClothingCategory   domain.ClothingCategory `json:"clothing_category"`
	CurrentCount       int                     `json:"current_count"`
	StockItemID        *int64                  `json:"stock_item_id"`
}

type stockViewJSON struct {
	ChildID    int64           `json:"child_id"`
	ChildName  string          `json:"child_name"`
	StockItems []stockLineJSON `json:"stock_items"`
}

type stockItemJSON struct {
	ID                 int64                   `json:"id"`
	ClothingCategoryID int64                   `json:"clothing_category_id"`
	ClothingCategory   domain.ClothingCategory `json:"clothing_category"`
	CurrentCount       int                     `json:"current_count"`
}

type stockChangeJSON struct {
	ChildID   int64         `json:"child_id"`
	ChildName string        `json:"child_name"`
	StockItem stockItemJSON `json:"stock_item"`
}

type insufficientStockJSON struct {
	CurrentCount       int `json:"current_count"`
	RequestedDecrement int `json:"requested_decrement"`
}

func toChildJSON(c domain.Child) childJSON {
	return childJSON{
		ID:        c.ID,
		GroupID:   c.GroupID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toChildrenJSON(children []domain.Child) []childJSON {
	out := make([]childJSON, 0, len(children))
	for _, c := range children {
		out = append(out, toChildJSON(c))
	}
	return out
}

func toGroupJSON(g domain.Group) groupJSON {
	return groupJSON{
		ID:         g.ID,
		Name:       g.Name,
		ShareToken: g.ShareToken,
		Children:   toChildrenJSON(g.Children),
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func toStockViewJSON(v domain.StockView) stockViewJSON {
	items := make([]stockLineJSON, 0, len(v.Lines))
	for _, line := range v.Lines {
		items = append(items, stockLineJSON{
			ClothingCategoryID: line.Category.ID,
			ClothingCategory:   line.Category,
			CurrentCount:       line.CurrentCount,
			StockItemID:        line.StockRecordID,
		})
	}
	return stockViewJSON{ChildID: v.Child.ID, ChildName: v.Child.Name, StockItems: items}
}

func toStockChangeJSON(c domain.StockChange) stockChangeJSON {
	return stockChangeJSON{
		ChildID:   c.Child.ID,
		ChildName: c.Child.Name,
		StockItem: stockItemJSON{
			ID:                 c.Record.ID,
			ClothingCategoryID: c.Category.ID,
			ClothingCategory:   c.Category,
			CurrentCount:       c.Record.CurrentCount,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{Success: false, Message: message, Data: data})
}
