package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/database"
	"github.com/qkrtlwls123-a11y/leadership-360/app/routes/corporates"
	"github.com/qkrtlwls123-a11y/leadership-360/app/routes/dashboard"
	"github.com/qkrtlwls123-a11y/leadership-360/app/routes/projects"
	"github.com/qkrtlwls123-a11y/leadership-360/app/routes/respond"
	"github.com/qkrtlwls123-a11y/leadership-360/app/routes/surveys"
	"github.com/qkrtlwls123-a11y/leadership-360/app/routes/syncer"
	"github.com/qkrtlwls123-a11y/leadership-360/app/services"
)

// customErrorHandler turns unhandled errors into JSON error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	cfg := config.Load()

	// Initialize database connection
	config.InitDB()

	// Create tables and apply pending migrations
	if err := database.CreateSchema(config.GetDB()); err != nil {
		log.Fatal("Failed to create schema:", err)
	}
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	app.Use(cors.New())
	app.Use(logger.New())

	// Setup sync routes
	syncer.SetupSyncRoutes(app)

	// Setup survey source registration routes
	surveys.SetupSurveysRoutes(app)

	// Setup corporates routes
	corporates.SetupCorporatesRoutes(app)

	// Setup projects routes
	projects.SetupProjectsRoutes(app)

	// Setup respondent routes
	respond.SetupRespondRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start nightly sync scheduler if enabled
	if cfg.SchedulerEnable {
		services.StartScheduler(cfg, config.GetDB())
	}

	// Start server
	log.Println("Server starting on :" + cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
