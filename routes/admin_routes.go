package routes

import (
	"github.com/harmonyhq/harmony_academy/handlers"
	"github.com/harmonyhq/harmony_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	users := admin.Group("/users")
	users.Get("", handlers.GetUsers)
	users.Delete("/:id", handlers.DeleteUser)
	users.Patch("/admin/:id", handlers.MakeAdmin)
	users.Patch("/instructor/:id", handlers.MakeInstructor)

	admin.Patch("/classes/status/:id", handlers.SetClassStatus)
}
