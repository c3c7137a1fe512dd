package surveys

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
	"github.com/qkrtlwls123-a11y/leadership-360/app/services"
)

// GetConfigAPI lists every registered survey source.
func GetConfigAPI(c *fiber.Ctx) error {
	store := services.NewConfigStore(config.AppConfig.FormsConfigPath)
	sources, err := store.Load()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load config"})
	}
	if sources == nil {
		sources = []models.SurveySource{}
	}
	return c.JSON(fiber.Map{
		"sources": sources,
		"count":   len(sources),
	})
}

// RegisterSurveyAPI creates or updates a survey source entry. The sheet
// URL is the update key: an existing entry with the same URL is replaced.
func RegisterSurveyAPI(c *fiber.Ctx) error {
	var src models.SurveySource
	if err := c.BodyParser(&src); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	store := services.NewConfigStore(config.AppConfig.FormsConfigPath)
	updated, err := store.Register(src)
	if err != nil {
		var cfgErr *services.ConfigurationError
		if errors.As(err, &cfgErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": cfgErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save config"})
	}

	message := "Survey source registered"
	if updated {
		message = "Survey source updated"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"updated": updated,
	})
}
