package jobs

import (
	"log"
	"time"

	"github.com/harmonyhq/harmony_academy/database"
	"github.com/harmonyhq/harmony_academy/models"
)

// A captured charge should turn into an enrollment within minutes. An
// intent still pending after this long means the customer paid but was
// never enrolled (most likely a seat-exhaustion rejection after capture)
// and needs a manual refund.
const intentGracePeriod = 30 * time.Minute

func ReconcilePaymentIntents() {
	log.Println("Running job: ReconcilePaymentIntents...")

	cutoff := time.Now().Add(-intentGracePeriod)

	var staleIntents []models.PaymentIntent
	err := database.DB.
		Where("status = ? AND created_at < ?", "pending", cutoff).
		Find(&staleIntents).Error
	if err != nil {
		log.Printf("Error checking for stale payment intents: %v", err)
		return
	}

	if len(staleIntents) == 0 {
		return
	}

	for _, intent := range staleIntents {
		result := database.DB.Model(&models.PaymentIntent{}).
			Where("id = ? AND status = ?", intent.ID, "pending").
			Update("status", "needs_review")
		if result.Error != nil {
			log.Printf("Error flagging payment intent %s: %v", intent.ID, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			log.Printf("🔥 Payment intent %s (%s, %.2f) captured but never enrolled, flagged for manual refund review.",
				intent.ProviderIntentID, intent.Email, intent.Amount)
		}
	}
}
