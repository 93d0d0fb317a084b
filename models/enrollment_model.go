package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment is durable proof of a purchased seat. Created exactly once
// per successful transaction, never mutated afterwards except for the
// asynchronously attached receipt URL.
type Enrollment struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email string    `gorm:"size:255;not null;index" json:"email"`

	ClassID    uuid.UUID `gorm:"not null" json:"class_id"`
	ClassName  string    `gorm:"size:255;not null" json:"class_name"`
	ClassImage *string   `gorm:"size:255" json:"class_image"`
	Price      float64   `gorm:"type:numeric(10,2);not null" json:"price"`

	PaymentID     uuid.UUID `gorm:"not null;unique" json:"payment_id"`
	ReceiptNumber string    `gorm:"size:20;unique" json:"receipt_number"`
	ReceiptURL    *string   `gorm:"size:255" json:"receipt_url"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
