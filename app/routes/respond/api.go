package respond

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/database"
	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

// GetAssignmentsAPI resolves an evaluator's access token to their list of
// pending and completed assignments.
func GetAssignmentsAPI(c *fiber.Ctx) error {
	token := c.Params("token")

	evaluator, err := database.GetEvaluatorByToken(config.GetDB(), token)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid access token"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up evaluator"})
	}

	assignments, err := database.GetAssignmentsByEvaluator(config.GetDB(), evaluator.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}

	return c.JSON(fiber.Map{
		"evaluator":   evaluator,
		"assignments": assignments,
	})
}

type submitRequest struct {
	AssignmentID int64  `json:"assignment_id"`
	Q1Score      int    `json:"q1_score"`
	Q2Score      int    `json:"q2_score"`
	Comment      string `json:"comment"`
}

// SubmitResponseAPI stores a rating for one of the evaluator's assignments
// and marks it completed.
func SubmitResponseAPI(c *fiber.Ctx) error {
	token := c.Params("token")

	evaluator, err := database.GetEvaluatorByToken(config.GetDB(), token)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid access token"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up evaluator"})
	}

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AssignmentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "assignment_id is required"})
	}
	if req.Q1Score < 1 || req.Q1Score > 5 || req.Q2Score < 1 || req.Q2Score > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Scores must be between 1 and 5"})
	}

	// The assignment must belong to this evaluator
	assignments, err := database.GetAssignmentsByEvaluator(config.GetDB(), evaluator.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}
	owned := false
	for _, a := range assignments {
		if a.ID == req.AssignmentID {
			owned = true
			break
		}
	}
	if !owned {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Assignment does not belong to this evaluator"})
	}

	if err := database.SaveAssessmentResponse(config.GetDB(), req.AssignmentID, req.Q1Score, req.Q2Score, req.Comment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to save response",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Response submitted"})
}
