package corporates

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/database"
	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

func GetCorporatesAPI(c *fiber.Ctx) error {
	corporates, err := database.GetAllCorporates(config.GetDB())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch corporates"})
	}
	if corporates == nil {
		corporates = []*models.Corporate{}
	}
	return c.JSON(fiber.Map{
		"corporates": corporates,
		"count":      len(corporates),
	})
}

func CreateCorporateAPI(c *fiber.Ctx) error {
	var corp models.Corporate
	if err := c.BodyParser(&corp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if strings.TrimSpace(corp.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	id, err := database.CreateCorporate(config.GetDB(), corp.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create corporate",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Corporate created successfully",
		"id":      id,
	})
}
