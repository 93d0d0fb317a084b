package handlers

import (
	"errors"

	config "github.com/harmonyhq/harmony_academy/configs"
	"github.com/harmonyhq/harmony_academy/database"
	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/harmonyhq/harmony_academy/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddToCartRequest struct {
	Email   string `json:"email" validate:"required,email"`
	ClassID string `json:"class_id" validate:"required,uuid"`
}

// AddToCart inserts a snapshot of the class. There is deliberately no
// dedup check: adding the same class twice produces two payable line
// items.
func AddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var class models.Class
	if err := database.DB.First(&class, "id = ?", req.ClassID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	item := models.CartItem{
		Email:      req.Email,
		ClassID:    class.ID,
		ClassName:  class.Name,
		ClassImage: class.Image,
		Price:      class.Price,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add to cart"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"insertedId": item.ID.String()})
}

// ListCart is gated by Protected + VerifySelf. A missing email parameter
// yields an empty list, not an error.
func ListCart(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.JSON([]models.CartItem{})
	}

	var items []models.CartItem
	if err := database.DB.Where("email = ?", email).Order("created_at desc").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(items)
}

// RemoveFromCart deletes a cart row by id. By default the row must
// belong to the caller; setting CART_DELETE_REQUIRE_OWNER=false restores
// the legacy unchecked delete.
func RemoveFromCart(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid cart item ID format"})
	}

	query := database.DB.Where("id = ?", id)
	if config.ConfigOr("CART_DELETE_REQUIRE_OWNER", "true") != "false" {
		query = query.Where("email = ?", middleware.TokenEmail(c))
	}

	result := query.Delete(&models.CartItem{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove cart item"})
	}

	return c.JSON(fiber.Map{"deletedCount": result.RowsAffected})
}
