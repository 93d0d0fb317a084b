package routes

import (
	config "github.com/harmonyhq/harmony_academy/configs"
	"github.com/harmonyhq/harmony_academy/handlers"
	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	carts := api.Group("/dashboard/carts")
	carts.Post("", handlers.AddToCart)
	carts.Get("", middleware.Protected(), middleware.VerifySelf(), handlers.ListCart)

	// The legacy API deleted cart rows without any identity check.
	// Default is owner-only; the flag restores the old behavior.
	if config.ConfigOr("CART_DELETE_REQUIRE_OWNER", "true") == "false" {
		carts.Delete("/:id", handlers.RemoveFromCart)
	} else {
		carts.Delete("/:id", middleware.Protected(), handlers.RemoveFromCart)
	}
}
