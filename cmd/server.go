package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/talentwire/scout/pkg/errx"
	"github.com/talentwire/scout/pkg/logx"
	"github.com/talentwire/scout/talent/candidate/candidateapi"
	"github.com/talentwire/scout/talent/search/searchapi"
)

func main() {
	// 1. Initialize Logger
	logx.SetLevel(logx.LevelInfo)
	logx.Info("Starting Scout API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.DB.Close()
	defer container.Redis.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "TalentWire Scout API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		queueStats, _ := container.CandidateService.QueueStats(c.Context())
		return c.JSON(fiber.Map{
			"status":      "ok",
			"db":          container.DB.Ping() == nil,
			"redis":       container.Redis.Ping(c.Context()).Err() == nil,
			"index_queue": queueStats,
		})
	})

	// 6. Register Routes

	// Auth: /auth/login, /auth/me
	container.AuthHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// Candidates: /api/v1/candidates
	candidateapi.RegisterRoutes(app, container.CandidateHandlers, container.AuthMiddleware)

	// Search: /api/v1/search plus the candidate tenure read
	searchapi.RegisterRoutes(app, container.SearchHandlers, container.AuthMiddleware)

	// 7. Background Workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if container.IndexWorker != nil {
		container.IndexWorker.Start(workerCtx)
	}

	// 8. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	stopWorkers()
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber's own errors (e.g. route not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// Structured domain errors
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
