package routes

import (
	config "github.com/harmonyhq/harmony_academy/configs"
	"github.com/harmonyhq/harmony_academy/handlers"
	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/create-payment-intent", middleware.Protected(), handlers.CreatePaymentIntent)
	api.Post("/payments", middleware.Protected(), handlers.CompleteEnrollment)
	api.Get("/payments", middleware.Protected(), middleware.VerifySelf(), handlers.ListPayments)

	// The legacy API let anyone list anyone's enrollments. Default is
	// gated; the flag restores the old open behavior.
	if config.ConfigOr("ENROLLMENTS_REQUIRE_AUTH", "true") == "false" {
		api.Get("/enrollments", handlers.ListEnrollments)
	} else {
		api.Get("/enrollments", middleware.Protected(), middleware.VerifySelf(), handlers.ListEnrollments)
	}
}
