package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem snapshots the class at add-time. Deleted exactly once, by the
// enrollment transaction that consumes it.
type CartItem struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email string    `gorm:"size:255;not null;index" json:"email"`

	ClassID    uuid.UUID `gorm:"not null" json:"class_id"`
	ClassName  string    `gorm:"size:255;not null" json:"class_name"`
	ClassImage *string   `gorm:"size:255" json:"class_image"`
	Price      float64   `gorm:"type:numeric(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
