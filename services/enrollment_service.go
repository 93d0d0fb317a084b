package services

import (
	"errors"

	"github.com/harmonyhq/harmony_academy/models"
	"github.com/harmonyhq/harmony_academy/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrClassNotFound    = errors.New("class not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	errSeatsExhausted = errors.New("seat not available")
)

// PaymentInfo is the externally confirmed payment outcome plus the cart
// item it pays for.
type PaymentInfo struct {
	Email         string
	TransactionID string
	Amount        float64
	CartItemID    uuid.UUID
	ClassID       uuid.UUID
}

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

type UpdateResult struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// TransactionResult reports each sub-operation of the enrollment
// transaction so the caller can audit exactly what happened. On seat
// exhaustion every sub-result is zeroed and Status is 0.
type TransactionResult struct {
	InsertResult   InsertResult `json:"insertResult"`
	EnrolledResult InsertResult `json:"enrolledResult"`
	DeleteResult   DeleteResult `json:"deleteResult"`
	UpdateResult   UpdateResult `json:"updateResult"`
	Status         int          `json:"status"`
	Message        string       `json:"message,omitempty"`
}

// CompleteEnrollment turns one paid cart item into one enrollment.
//
// All writes run inside a single database transaction. The seat is
// claimed with a conditional decrement (available_seats > 0 is part of
// the UPDATE itself), so two concurrent calls against the last seat
// cannot both pass the check: one claims it, the other observes zero
// rows modified and gets the seat-exhaustion result. The ledger row is
// written only after the claim succeeds, which means a rejected attempt
// leaves no orphaned payment record.
func CompleteEnrollment(db *gorm.DB, info PaymentInfo) (*TransactionResult, error) {
	var class models.Class
	if err := db.First(&class, "id = ?", info.ClassID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	result := &TransactionResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.First(&item, "id = ?", info.CartItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		claim := tx.Model(&models.Class{}).
			Where("id = ? AND available_seats > 0", info.ClassID).
			Updates(map[string]interface{}{
				"available_seats":   gorm.Expr("available_seats - 1"),
				"enrolled_students": gorm.Expr("enrolled_students + 1"),
			})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return errSeatsExhausted
		}

		payment := models.Payment{
			Email:         info.Email,
			Amount:        info.Amount,
			TransactionID: info.TransactionID,
			CartItemID:    item.ID,
			ClassID:       class.ID,
			ClassName:     item.ClassName,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		receiptNumber, err := utils.GenerateReceiptNumber(tx)
		if err != nil {
			return err
		}

		enrollment := models.Enrollment{
			Email:         info.Email,
			ClassID:       class.ID,
			ClassName:     item.ClassName,
			ClassImage:    item.ClassImage,
			Price:         item.Price,
			PaymentID:     payment.ID,
			ReceiptNumber: receiptNumber,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		deleted := tx.Delete(&models.CartItem{}, "id = ?", item.ID)
		if deleted.Error != nil {
			return deleted.Error
		}

		if err := tx.Model(&models.Instructor{}).
			Where("email = ?", class.InstructorEmail).
			Update("total_students", gorm.Expr("total_students + 1")).Error; err != nil {
			return err
		}

		// Close out the charge intent so reconciliation does not flag it.
		tx.Model(&models.PaymentIntent{}).
			Where("provider_intent_id = ?", info.TransactionID).
			Update("status", "completed")

		result.InsertResult = InsertResult{InsertedID: payment.ID.String()}
		result.EnrolledResult = InsertResult{InsertedID: enrollment.ID.String()}
		result.DeleteResult = DeleteResult{DeletedCount: deleted.RowsAffected}
		result.UpdateResult = UpdateResult{ModifiedCount: claim.RowsAffected}
		result.Status = 1
		return nil
	})

	if errors.Is(err, errSeatsExhausted) {
		return &TransactionResult{Status: 0, Message: "seat not available"}, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListPayments returns the ledger rows for one identity, newest first.
func ListPayments(db *gorm.DB, email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := db.Where("email = ?", email).Order("created_at desc").Find(&payments).Error
	return payments, err
}

// ListEnrollments returns the enrollments for one identity.
func ListEnrollments(db *gorm.DB, email string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := db.Where("email = ?", email).Order("created_at desc").Find(&enrollments).Error
	return enrollments, err
}
