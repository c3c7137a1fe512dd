package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/database"
	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Get("/", GetDashboardStatsAPI)
	api.Get("/progress", GetProgressAPI)
}

func GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard stats"})
	}
	return c.JSON(stats)
}

func GetProgressAPI(c *fiber.Ctx) error {
	progress, err := database.GetProjectProgress(config.GetDB())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load project progress"})
	}
	if progress == nil {
		progress = []*models.ProjectProgress{}
	}
	return c.JSON(fiber.Map{
		"progress": progress,
		"count":    len(progress),
	})
}
