package model

import "time"

// Category is the checklist an item belongs to.
type Category string

const (
	CategoryVegFruit Category = "vegfruit"
	CategoryGrocery  Category = "grocery"
)

// IsValidCategory reports whether c names one of the two checklists.
func IsValidCategory(c Category) bool {
	return c == CategoryVegFruit || c == CategoryGrocery
}

// Item is a checklist entry. Names are unique per user and category. An item is
// never soft-deleted in place; deletion converts it into a DeletedItem so the
// removal can be undone.
type Item struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_owner_name_category,priority:2"`
	Category  Category  `json:"category" gorm:"type:varchar(20);not null;uniqueIndex:idx_owner_name_category,priority:3"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	ToProcure bool      `json:"to_procure" gorm:"default:false"`
	Consumed  bool      `json:"consumed" gorm:"default:false"`
	UserID    uint      `json:"-" gorm:"not null;index;uniqueIndex:idx_owner_name_category,priority:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
