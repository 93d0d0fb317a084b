package utils

import (
	"math/rand"
	"time"

	"github.com/harmonyhq/harmony_academy/models"
	"gorm.io/gorm"
)

const receiptNumberLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReceiptNumber returns a receipt number of the form HA-XXXXXXXX
// that is unique across enrollments.
func GenerateReceiptNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, receiptNumberLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		number := "HA-" + string(b)

		var enrollment models.Enrollment
		err := tx.Where("receipt_number = ?", number).First(&enrollment).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}
