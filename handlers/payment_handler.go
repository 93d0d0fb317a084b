package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/harmonyhq/harmony_academy/database"
	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/harmonyhq/harmony_academy/models"
	"github.com/harmonyhq/harmony_academy/notifications"
	"github.com/harmonyhq/harmony_academy/payments"
	"github.com/harmonyhq/harmony_academy/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// CreatePaymentIntent asks the provider for a charge intent and records
// it as pending so the reconciliation job can track its outcome.
func CreatePaymentIntent(c *fiber.Ctx) error {
	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	intent, err := payments.CreatePaymentIntent(req.Price, "usd")
	if err != nil {
		log.Printf("🔥 CreatePaymentIntent provider call failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment intent"})
	}

	record := models.PaymentIntent{
		Email:            middleware.TokenEmail(c),
		Amount:           req.Price,
		ProviderIntentID: intent.ID,
		Status:           "pending",
	}
	if err := database.DB.Create(&record).Error; err != nil {
		log.Printf("🔥 Failed to record payment intent %s: %v", intent.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment intent"})
	}

	return c.JSON(fiber.Map{"clientSecret": intent.ClientSecret})
}

type CompleteEnrollmentRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	TransactionID string  `json:"transactionId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	CartItemID    string  `json:"cartItemId" validate:"required,uuid"`
	ClassID       string  `json:"classId" validate:"required,uuid"`
}

// CompleteEnrollment converts a paid cart item into an enrollment. The
// payer identity in the body must match the credential.
func CompleteEnrollment(c *fiber.Ctx) error {
	var req CompleteEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Email != middleware.TokenEmail(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": true, "message": "forbidden access"})
	}

	cartItemID, _ := uuid.Parse(req.CartItemID)
	classID, _ := uuid.Parse(req.ClassID)

	result, err := services.CompleteEnrollment(database.DB, services.PaymentInfo{
		Email:         req.Email,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		CartItemID:    cartItemID,
		ClassID:       classID,
	})
	if err != nil {
		if errors.Is(err, services.ErrClassNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		if errors.Is(err, services.ErrCartItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
		}
		log.Printf("🔥 CompleteEnrollment failed for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete enrollment"})
	}

	if result.Status == 1 {
		enrollmentID, _ := uuid.Parse(result.EnrolledResult.InsertedID)
		go services.GenerateEnrollmentReceipt(enrollmentID)
		go notifications.SendEmail("", req.Email, "Enrollment Confirmed!",
			fmt.Sprintf("<h1>You're In!</h1><p>Your payment was successful and your seat is confirmed. Receipt reference: %s.</p>", req.TransactionID))
	}

	return c.JSON(result)
}

// ListPayments returns the caller's ledger rows, newest first. Gated by
// Protected + VerifySelf.
func ListPayments(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.JSON([]models.Payment{})
	}

	paymentRecords, err := services.ListPayments(database.DB, email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(paymentRecords)
}

// ListEnrollments returns the enrollments for the requested identity.
// Route-level gating is configurable; see routes.PaymentRoutes.
func ListEnrollments(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.JSON([]models.Enrollment{})
	}

	enrollments, err := services.ListEnrollments(database.DB, email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(enrollments)
}
