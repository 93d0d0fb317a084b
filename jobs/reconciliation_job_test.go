package jobs

import (
	"testing"
	"time"

	"github.com/harmonyhq/harmony_academy/database"
	"github.com/harmonyhq/harmony_academy/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.PaymentIntent{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	previous := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = previous })

	return db
}

func TestReconcileFlagsStalePendingIntents(t *testing.T) {
	db := newTestDB(t)

	stale := models.PaymentIntent{
		Email: "lena@harmony.test", Amount: 49.99,
		ProviderIntentID: "pi_stale", Status: "pending",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	fresh := models.PaymentIntent{
		Email: "lena@harmony.test", Amount: 20,
		ProviderIntentID: "pi_fresh", Status: "pending",
		CreatedAt: time.Now(),
	}
	completed := models.PaymentIntent{
		Email: "lena@harmony.test", Amount: 30,
		ProviderIntentID: "pi_done", Status: "completed",
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	for _, intent := range []*models.PaymentIntent{&stale, &fresh, &completed} {
		if err := db.Create(intent).Error; err != nil {
			t.Fatalf("failed to seed intent: %v", err)
		}
	}

	ReconcilePaymentIntents()

	assertStatus := func(id, want string) {
		var intent models.PaymentIntent
		if err := db.First(&intent, "provider_intent_id = ?", id).Error; err != nil {
			t.Fatalf("failed to reload intent %s: %v", id, err)
		}
		if intent.Status != want {
			t.Errorf("intent %s: expected status %q, got %q", id, want, intent.Status)
		}
	}

	assertStatus("pi_stale", "needs_review")
	assertStatus("pi_fresh", "pending")
	assertStatus("pi_done", "completed")
}
