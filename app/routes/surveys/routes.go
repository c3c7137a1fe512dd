package surveys

import (
	"github.com/gofiber/fiber/v2"
)

func SetupSurveysRoutes(app *fiber.App) {
	api := app.Group("/api/surveys")
	api.Get("/config", GetConfigAPI)
	api.Post("/register", RegisterSurveyAPI)
}
