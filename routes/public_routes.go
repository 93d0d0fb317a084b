package routes

import (
	"github.com/harmonyhq/harmony_academy/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/instructors", handlers.GetInstructors)
	api.Get("/instructors/popular", handlers.GetPopularInstructors)
	api.Get("/classes", handlers.GetClasses)
	api.Get("/classes/:id", handlers.GetClass)
}
