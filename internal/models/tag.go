package models

// TagKind selects which reference vocabulary a tag definition belongs to.
type TagKind string

const (
	TagKindChat       TagKind = "chat"
	TagKindEmail      TagKind = "email"
	TagKindResolution TagKind = "resolution"
)

// TagDefinition is a display-time reference entry: it drives tag chip
// coloring in the UI and nothing else. Stored template tags are never
// validated against this table; the vocabulary can drift without
// touching existing entities.
type TagDefinition struct {
	ID        uint    `gorm:"primary_key" json:"id"`
	Kind      TagKind `gorm:"size:20;index:idx_tag_kind_name,unique" json:"kind"`
	Name      string  `gorm:"size:100;index:idx_tag_kind_name,unique" json:"name"`
	Label     string  `gorm:"size:100" json:"label"`
	Color     string  `gorm:"size:100" json:"color"`
	SortOrder int     `json:"sort_order"`
}
