package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Instructor struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"not null;unique" json:"user_id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Image    *string   `gorm:"size:255" json:"image"`
	Bio      *string   `gorm:"type:text" json:"bio"`

	// Denormalized counter, bumped by the enrollment transaction.
	TotalStudents int `gorm:"default:0" json:"total_students"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Instructor) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
