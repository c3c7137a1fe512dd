package syncer

import (
	"github.com/gofiber/fiber/v2"
)

func SetupSyncRoutes(app *fiber.App) {
	api := app.Group("/api/sync")
	api.Post("/", RunSyncAPI)
	api.Get("/surveys", GetSyncedSurveysAPI)
	api.Get("/surveys/:id/responses", GetSurveyResponsesAPI)
}
