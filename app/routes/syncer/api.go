package syncer

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/database"
	"github.com/qkrtlwls123-a11y/leadership-360/app/services"
)

// RunSyncAPI triggers a full sync of every configured survey source.
// Per-source failures come back inside the summary; only run-level
// preconditions produce an error status.
func RunSyncAPI(c *fiber.Ctx) error {
	summary, err := services.RunSync(c.Context(), config.AppConfig, config.GetDB())
	if err != nil {
		var precond *services.RunPreconditionError
		if errors.As(err, &precond) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": precond.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Sync failed", "details": err.Error(),
		})
	}
	return c.JSON(summary)
}

func GetSyncedSurveysAPI(c *fiber.Ctx) error {
	store := database.NewStore(config.GetDB())
	surveys, err := store.ListSurveys()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load surveys"})
	}
	return c.JSON(fiber.Map{
		"surveys": surveys,
		"count":   len(surveys),
	})
}

func GetSurveyResponsesAPI(c *fiber.Ctx) error {
	surveyID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid survey id"})
	}

	store := database.NewStore(config.GetDB())
	responses, err := store.ListResponses(int64(surveyID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load responses"})
	}
	return c.JSON(fiber.Map{
		"responses": responses,
		"count":     len(responses),
	})
}
