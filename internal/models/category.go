package models

// Category is a tag for project entries. Inactive categories are hidden from
// pickers but stay valid on existing entries.
type Category struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Name   string `gorm:"unique;not null" json:"name"`
	Active bool   `gorm:"not null;default:true" json:"active"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories seeds an empty category table
var DefaultCategories = []string{"Programming", "Meetings", "Marketing"}
