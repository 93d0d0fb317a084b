package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/harmonyhq/harmony_academy/database"
	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/harmonyhq/harmony_academy/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clients send price and seat counts as either JSON numbers or strings.
// Both are normalized here to one numeric kind each: float64 for price,
// int for seat counts, on every code path.
func coerceFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(n, 64)
	case nil:
		return 0, errors.New("missing numeric value")
	default:
		return 0, fmt.Errorf("cannot parse %T as number", v)
	}
}

func coerceInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			// Tolerate "10.0" style input the way parseInt would.
			f, ferr := strconv.ParseFloat(n, 64)
			if ferr != nil {
				return 0, err
			}
			return int(f), nil
		}
		return parsed, nil
	case nil:
		return 0, errors.New("missing numeric value")
	default:
		return 0, fmt.Errorf("cannot parse %T as integer", v)
	}
}

type ClassRequest struct {
	Name           string      `json:"name" validate:"required"`
	Image          *string     `json:"image,omitempty"`
	Price          interface{} `json:"price" validate:"required"`
	AvailableSeats interface{} `json:"availableSeats" validate:"required"`
}

func GetClasses(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Class{})
	if email := c.Query("email"); email != "" {
		query = query.Where("instructor_email = ?", email)
	}
	if c.Query("approve") != "" {
		query = database.DB.Model(&models.Class{}).Where("status = ?", "approved")
	}

	var classes []models.Class
	if err := query.Find(&classes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(classes)
}

func GetClass(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID format"})
	}

	var class models.Class
	if err := database.DB.First(&class, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(class)
}

func CreateClass(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	price, err := coerceFloat(req.Price)
	if err != nil || price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price"})
	}
	seats, err := coerceInt(req.AvailableSeats)
	if err != nil || seats < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid availableSeats"})
	}

	email := middleware.TokenEmail(c)
	var instructor models.Instructor
	instructorName := ""
	if err := database.DB.Where("email = ?", email).First(&instructor).Error; err == nil {
		instructorName = instructor.Name
	}

	newClass := models.Class{
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  instructorName,
		InstructorEmail: email,
		Price:           price,
		AvailableSeats:  seats,
		Status:          "pending",
	}
	if err := database.DB.Create(&newClass).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"insertedId": newClass.ID.String()})
}

// UpdateClassDetails overwrites the four editable fields of a class.
func UpdateClassDetails(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID format"})
	}

	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	price, err := coerceFloat(req.Price)
	if err != nil || price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price"})
	}
	seats, err := coerceInt(req.AvailableSeats)
	if err != nil || seats < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid availableSeats"})
	}

	result := database.DB.Model(&models.Class{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"image":           req.Image,
			"name":            req.Name,
			"price":           price,
			"available_seats": seats,
		})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}

	return c.JSON(fiber.Map{"modifiedCount": result.RowsAffected})
}

type StatusRequest struct {
	Status   string  `json:"status" validate:"required,oneof=pending approved denied"`
	Feedback *string `json:"feedback,omitempty"`
}

// SetClassStatus upserts status and reviewer feedback. There is no
// terminal state: a class may move between pending, approved and denied
// in any direction.
func SetClassStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID format"})
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Feedback != nil {
		updates["feedback"] = req.Feedback
	}

	result := database.DB.Model(&models.Class{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class status"})
	}

	return c.JSON(fiber.Map{"modifiedCount": result.RowsAffected})
}
