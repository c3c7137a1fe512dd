package projects

import (
	"github.com/gofiber/fiber/v2"
)

func SetupProjectsRoutes(app *fiber.App) {
	api := app.Group("/api/projects")
	api.Get("/", GetProjectsAPI)
	api.Post("/", CreateProjectAPI)
	api.Get("/:id/leaders", GetProjectLeadersAPI)
	api.Get("/:id/evaluators", GetProjectEvaluatorsAPI)
	api.Get("/:id/responses", GetProjectResponsesAPI)
	api.Get("/:id/summary", GetProjectSummaryAPI)
	api.Post("/:id/roster", UploadRosterAPI)
}
