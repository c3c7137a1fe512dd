package corporates

import (
	"github.com/gofiber/fiber/v2"
)

func SetupCorporatesRoutes(app *fiber.App) {
	api := app.Group("/api/corporates")
	api.Get("/", GetCorporatesAPI)
	api.Post("/", CreateCorporateAPI)
}
