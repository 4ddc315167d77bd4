package model

import "time"

// DeletedItem is the recoverable snapshot of a removed Item. It keeps its own
// primary key; OriginalID records the removed item's id but is never reused,
// undoing always creates a fresh Item row. Rows live until undone; there is no
// expiry or garbage collection.
type DeletedItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OriginalID uint      `json:"original_id" gorm:"not null"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	Category   Category  `json:"category" gorm:"type:varchar(20);not null"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	ToProcure  bool      `json:"to_procure" gorm:"default:false"`
	Consumed   bool      `json:"consumed" gorm:"default:false"`
	UserID     uint      `json:"-" gorm:"not null;index"`
	DeletedAt  time.Time `json:"deleted_at" gorm:"autoCreateTime"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
