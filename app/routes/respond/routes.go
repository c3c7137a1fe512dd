package respond

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRespondRoutes(app *fiber.App) {
	api := app.Group("/api/respond")
	api.Get("/:token", GetAssignmentsAPI)
	api.Post("/:token", SubmitResponseAPI)
}
