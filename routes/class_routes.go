package routes

import (
	"github.com/harmonyhq/harmony_academy/handlers"
	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func ClassRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	instructor := api.Group("/classes", middleware.Protected(), middleware.InstructorRequired())
	instructor.Post("", handlers.CreateClass)
	instructor.Patch("/:id", handlers.UpdateClassDetails)
}
