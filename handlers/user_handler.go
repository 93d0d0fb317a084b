package handlers

import (
	"errors"

	"github.com/harmonyhq/harmony_academy/database"
	"github.com/harmonyhq/harmony_academy/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetUsers(c *fiber.Ctx) error {
	query := database.DB.Model(&models.User{})
	if email := c.Query("email"); email != "" {
		query = query.Where("email = ?", email)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}

func DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	result := database.DB.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"deletedCount": result.RowsAffected})
}

func promoteUser(c *fiber.Ctx, role string) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	result := database.DB.Model(&user).Update("role", role)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update role"})
	}

	// Promoting to instructor also lists them on the instructors page.
	if role == "instructor" {
		instructor := models.Instructor{
			UserID: user.ID,
			Name:   user.FullName,
			Email:  user.Email,
			Image:  user.PhotoURL,
		}
		if err := database.DB.Where("user_id = ?", user.ID).FirstOrCreate(&instructor).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create instructor profile"})
		}
	}

	return c.JSON(fiber.Map{"modifiedCount": result.RowsAffected})
}

func MakeAdmin(c *fiber.Ctx) error {
	return promoteUser(c, "admin")
}

func MakeInstructor(c *fiber.Ctx) error {
	return promoteUser(c, "instructor")
}
