package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is the append-only ledger row. No UpdatedAt: rows are never
// mutated after insert.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email         string    `gorm:"size:255;not null;index" json:"email"`
	Amount        float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	TransactionID string    `gorm:"size:255;not null" json:"transaction_id"`

	CartItemID uuid.UUID `gorm:"not null" json:"cart_item_id"`
	ClassID    uuid.UUID `gorm:"not null" json:"class_id"`
	ClassName  string    `gorm:"size:255" json:"class_name"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PaymentIntent tracks a charge intent from creation to its recorded
// outcome, so the reconciliation job can flag captures that never became
// enrollments.
type PaymentIntent struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email            string    `gorm:"size:255;not null;index" json:"email"`
	Amount           float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	ProviderIntentID string    `gorm:"size:255;not null;unique" json:"provider_intent_id"`
	Status           string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (pi *PaymentIntent) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}
