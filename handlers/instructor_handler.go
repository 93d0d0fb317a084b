package handlers

import (
	"github.com/harmonyhq/harmony_academy/database"
	"github.com/harmonyhq/harmony_academy/models"
	"github.com/gofiber/fiber/v2"
)

func GetInstructors(c *fiber.Ctx) error {
	var instructors []models.Instructor
	if err := database.DB.Find(&instructors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(instructors)
}

// GetPopularInstructors ranks instructors by how many students the
// enrollment transaction has credited to them.
func GetPopularInstructors(c *fiber.Ctx) error {
	var instructors []models.Instructor
	if err := database.DB.Order("total_students desc").Limit(6).Find(&instructors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(instructors)
}
