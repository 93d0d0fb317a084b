package routes

import (
	"github.com/harmonyhq/harmony_academy/handlers"
	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/upload/signature", middleware.Protected(), middleware.InstructorRequired(), handlers.GenerateUploadSignature)
}
