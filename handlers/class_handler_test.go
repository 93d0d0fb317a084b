package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/harmonyhq/harmony_academy/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newClassApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	db := newTestDB(t)

	app := fiber.New()
	app.Get("/classes", GetClasses)
	app.Get("/classes/:id", GetClass)
	app.Post("/classes", middleware.Protected(), middleware.InstructorRequired(), CreateClass)
	app.Patch("/classes/:id", middleware.Protected(), middleware.InstructorRequired(), UpdateClassDetails)
	app.Patch("/classes/status/:id", middleware.Protected(), middleware.AdminRequired(), SetClassStatus)
	return app, db
}

func TestCreateClassCoercesStringNumerics(t *testing.T) {
	app, db := newClassApp(t)

	token := signTestToken(t, "amara@harmony.test", "instructor")
	payload := map[string]interface{}{
		"name":           "Violin Basics",
		"price":          "49.99",
		"availableSeats": "10",
	}
	resp, body := doJSON(t, app, http.MethodPost, "/classes", token, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.StatusCode, body)
	}

	var class models.Class
	if err := db.First(&class).Error; err != nil {
		t.Fatalf("failed to load class: %v", err)
	}
	if class.Price != 49.99 {
		t.Errorf("expected price 49.99, got %v", class.Price)
	}
	if class.AvailableSeats != 10 {
		t.Errorf("expected 10 seats, got %d", class.AvailableSeats)
	}
	if class.Status != "pending" {
		t.Errorf("new classes must start pending, got %q", class.Status)
	}
}

func TestUpdateClassDetailsCoercesSameAsCreate(t *testing.T) {
	app, db := newClassApp(t)

	class := models.Class{Name: "Old Name", InstructorEmail: "amara@harmony.test", Price: 10, AvailableSeats: 1, Status: "approved"}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("failed to seed class: %v", err)
	}

	token := signTestToken(t, "amara@harmony.test", "instructor")

	// Numbers and strings must normalize identically on both paths.
	payload := map[string]interface{}{
		"name":           "New Name",
		"image":          "https://img.test/violin.jpg",
		"price":          "49.99",
		"availableSeats": 10,
	}
	resp, body := doJSON(t, app, http.MethodPatch, "/classes/"+class.ID.String(), token, payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.StatusCode, body)
	}

	var updated models.Class
	if err := db.First(&updated, "id = ?", class.ID).Error; err != nil {
		t.Fatalf("failed to reload class: %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("expected name overwrite, got %q", updated.Name)
	}
	if updated.Price != 49.99 {
		t.Errorf("expected price 49.99, got %v", updated.Price)
	}
	if updated.AvailableSeats != 10 {
		t.Errorf("expected 10 seats, got %d", updated.AvailableSeats)
	}
}

func TestSetClassStatusAnyDirection(t *testing.T) {
	app, db := newClassApp(t)

	class := models.Class{Name: "Drum Circle", InstructorEmail: "amara@harmony.test", Price: 20, AvailableSeats: 5}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("failed to seed class: %v", err)
	}

	token := signTestToken(t, "admin@harmony.test", "admin")
	target := "/classes/status/" + class.ID.String()

	for _, status := range []string{"approved", "denied", "pending", "approved"} {
		payload := map[string]interface{}{"status": status}
		if status == "denied" {
			payload["feedback"] = "needs a syllabus"
		}
		resp, body := doJSON(t, app, http.MethodPatch, target, token, payload)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %q: expected 200, got %d (%s)", status, resp.StatusCode, body)
		}

		var updated models.Class
		db.First(&updated, "id = ?", class.ID)
		if updated.Status != status {
			t.Errorf("expected status %q, got %q", status, updated.Status)
		}
	}

	var final models.Class
	db.First(&final, "id = ?", class.ID)
	if final.Feedback == nil || *final.Feedback != "needs a syllabus" {
		t.Errorf("expected reviewer feedback to persist, got %v", final.Feedback)
	}
}

func TestGetClassesApprovedFilter(t *testing.T) {
	app, db := newClassApp(t)

	db.Create(&models.Class{Name: "Approved One", InstructorEmail: "a@harmony.test", Price: 1, Status: "approved"})
	db.Create(&models.Class{Name: "Pending One", InstructorEmail: "b@harmony.test", Price: 1, Status: "pending"})

	resp, body := doJSON(t, app, http.MethodGet, "/classes?approve=true", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var classes []models.Class
	if err := json.Unmarshal(body, &classes); err != nil {
		t.Fatalf("expected JSON array, got %s", body)
	}
	if len(classes) != 1 || classes[0].Name != "Approved One" {
		t.Errorf("expected only the approved class, got %v", classes)
	}
}

func TestGetClassNotFound(t *testing.T) {
	app, _ := newClassApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/classes/1db81a34-33a1-4f8a-a6b7-0f6d2f1a9e10", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
