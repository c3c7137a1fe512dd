package projects

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/database"
	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

func GetProjectsAPI(c *fiber.Ctx) error {
	projects, err := database.GetAllProjects(config.GetDB())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch projects"})
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	return c.JSON(fiber.Map{
		"projects": projects,
		"count":    len(projects),
	})
}

type createProjectRequest struct {
	Corporate string `json:"corporate"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
}

func CreateProjectAPI(c *fiber.Ctx) error {
	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if strings.TrimSpace(req.Corporate) == "" || strings.TrimSpace(req.Name) == "" || req.Year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corporate, name and year are required"})
	}

	id, err := database.GetOrCreateProject(config.GetDB(), req.Corporate, req.Name, req.Year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create project",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Project created successfully",
		"id":      id,
	})
}

func GetProjectLeadersAPI(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project id"})
	}

	leaders, err := database.GetLeadersByProject(config.GetDB(), int64(projectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch leaders"})
	}
	if leaders == nil {
		leaders = []*models.Leader{}
	}
	return c.JSON(fiber.Map{
		"leaders": leaders,
		"count":   len(leaders),
	})
}

func GetProjectEvaluatorsAPI(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project id"})
	}

	evaluators, err := database.GetEvaluatorsByProject(config.GetDB(), int64(projectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch evaluators"})
	}
	if evaluators == nil {
		evaluators = []*models.Evaluator{}
	}
	return c.JSON(fiber.Map{
		"evaluators": evaluators,
		"count":      len(evaluators),
	})
}

func GetProjectResponsesAPI(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project id"})
	}

	responses, err := database.GetProjectResponses(config.GetDB(), int64(projectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch responses"})
	}
	if responses == nil {
		responses = []*models.AssessmentResponse{}
	}
	return c.JSON(fiber.Map{
		"responses": responses,
		"count":     len(responses),
	})
}

func GetProjectSummaryAPI(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project id"})
	}

	summary, err := database.GetLeaderSummary(config.GetDB(), int64(projectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch summary"})
	}
	if summary == nil {
		summary = []*models.LeaderSummary{}
	}
	return c.JSON(fiber.Map{
		"summary": summary,
		"count":   len(summary),
	})
}

// UploadRosterAPI ingests a bulk roster: evaluators, leaders and their
// assignments in one request. Duplicate pairs are counted as skipped.
func UploadRosterAPI(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project id"})
	}

	var roster []models.RosterRow
	if err := c.BodyParser(&roster); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(roster) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Roster is empty"})
	}

	created, skipped, err := database.ProcessRosterUpload(config.GetDB(), int64(projectID), roster)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Roster upload failed",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Roster processed",
		"created": created,
		"skipped": skipped,
	})
}
