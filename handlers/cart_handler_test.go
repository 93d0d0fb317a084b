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

func newCartApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	db := newTestDB(t)

	app := fiber.New()
	app.Post("/dashboard/carts", AddToCart)
	app.Get("/dashboard/carts", middleware.Protected(), middleware.VerifySelf(), ListCart)
	app.Delete("/dashboard/carts/:id", middleware.Protected(), RemoveFromCart)
	return app, db
}

func seedTestClass(t *testing.T, db *gorm.DB) models.Class {
	t.Helper()

	class := models.Class{
		Name:            "Cello Workshop",
		InstructorEmail: "amara@harmony.test",
		Price:           59.99,
		AvailableSeats:  10,
		Status:          "approved",
	}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("failed to seed class: %v", err)
	}
	return class
}

func TestListCartRequiresCredential(t *testing.T) {
	app, _ := newCartApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/dashboard/carts?email=lena@harmony.test", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	if parsed["error"] != true || parsed["message"] != "unauthorized access" {
		t.Errorf("unexpected body: %v", parsed)
	}
}

func TestListCartRequesterMismatch(t *testing.T) {
	app, db := newCartApp(t)
	class := seedTestClass(t, db)

	// A row for the victim: it must never be readable by the attacker.
	db.Create(&models.CartItem{Email: "victim@harmony.test", ClassID: class.ID, ClassName: class.Name, Price: class.Price})

	token := signTestToken(t, "attacker@harmony.test", "student")
	resp, body := doJSON(t, app, http.MethodGet, "/dashboard/carts?email=victim@harmony.test", token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	if parsed["error"] != true || parsed["message"] != "forbidden access" {
		t.Errorf("unexpected body: %v", parsed)
	}
}

func TestListCartMissingEmailYieldsEmptyList(t *testing.T) {
	app, _ := newCartApp(t)

	token := signTestToken(t, "lena@harmony.test", "student")
	resp, body := doJSON(t, app, http.MethodGet, "/dashboard/carts", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var items []models.CartItem
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("expected a JSON array, got %s", body)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got %d items", len(items))
	}
}

func TestAddToCartAllowsDuplicates(t *testing.T) {
	app, db := newCartApp(t)
	class := seedTestClass(t, db)

	payload := map[string]string{"email": "lena@harmony.test", "class_id": class.ID.String()}
	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, app, http.MethodPost, "/dashboard/carts", "", payload)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("insert %d: expected 201, got %d (%s)", i, resp.StatusCode, body)
		}
	}

	var count int64
	db.Model(&models.CartItem{}).Where("email = ?", "lena@harmony.test").Count(&count)
	if count != 2 {
		t.Errorf("expected two payable line items, got %d", count)
	}
}

func TestRemoveFromCartOwnerOnlyByDefault(t *testing.T) {
	app, db := newCartApp(t)
	class := seedTestClass(t, db)

	item := models.CartItem{Email: "victim@harmony.test", ClassID: class.ID, ClassName: class.Name, Price: class.Price}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed cart item: %v", err)
	}

	attackerToken := signTestToken(t, "attacker@harmony.test", "student")
	resp, body := doJSON(t, app, http.MethodDelete, "/dashboard/carts/"+item.ID.String(), attackerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	if parsed["deletedCount"] != float64(0) {
		t.Errorf("expected deletedCount 0 for non-owner, got %v", parsed["deletedCount"])
	}

	ownerToken := signTestToken(t, "victim@harmony.test", "student")
	resp, body = doJSON(t, app, http.MethodDelete, "/dashboard/carts/"+item.ID.String(), ownerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	json.Unmarshal(body, &parsed)
	if parsed["deletedCount"] != float64(1) {
		t.Errorf("expected deletedCount 1 for owner, got %v", parsed["deletedCount"])
	}
}
