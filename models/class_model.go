package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class seat counters are only ever moved by the enrollment transaction
// (available_seats - 1, enrolled_students + 1 in a single conditional
// update) or by an instructor editing class details.
type Class struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Image           *string   `gorm:"size:255" json:"image"`
	InstructorName  string    `gorm:"size:255" json:"instructor_name"`
	InstructorEmail string    `gorm:"size:255;index" json:"instructor_email"`

	Price            float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	AvailableSeats   int     `gorm:"not null;default:0" json:"available_seats"`
	EnrolledStudents int     `gorm:"not null;default:0" json:"enrolled_students"`

	Status   string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	Feedback *string `gorm:"type:text" json:"feedback"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
