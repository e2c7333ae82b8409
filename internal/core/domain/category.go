package domain

type ClothingCategory struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	IconPath  *string `json:"icon_path"`
	SortOrder int     `json:"sort_order"`
}
