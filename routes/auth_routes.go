package routes

import (
	"github.com/harmonyhq/harmony_academy/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/jwt", handlers.IssueToken)
	api.Post("/users", handlers.RegisterUser)
	api.Post("/auth/login", handlers.LoginUser)
}
