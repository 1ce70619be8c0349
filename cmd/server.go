package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/board/boardapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Initialize Dependency Container (also configures the logger)
	container := NewContainer()
	defer logx.Sync()
	defer container.Close()

	logx.Info("Starting Hireflow API Server...")

	// 2. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Hireflow API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             int(boardapi.MaxUploadSize) + 1024*1024,
	})

	// 3. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 4. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status": "ok",
			"clock":  container.BoardService.Clock(),
		}
		if container.DB != nil {
			resp["db"] = container.DB.Ping() == nil
		}
		if container.Redis != nil {
			resp["redis"] = container.Redis.Ping(c.Context()).Err() == nil
		}
		return c.JSON(resp)
	})

	// 5. Register Routes
	// /api/auth/*, /api/me/*, /api/postings/*, /api/applications/*, /api/clock/*
	boardapi.RegisterRoutes(app, container.BoardHandlers, container.AuthMiddleware)

	// 6. Start Server with Graceful Shutdown
	port := container.Config.Port

	// Run server in a goroutine
	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error, possibly wrapped
	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		}
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
