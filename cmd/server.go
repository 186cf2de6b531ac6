package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/careerlens/careers/career/careerapi"
	"github.com/Abraxas-365/careerlens/careers/course/courseapi"
	"github.com/Abraxas-365/careerlens/careers/interview/interviewapi"
	"github.com/Abraxas-365/careerlens/careers/job/jobapi"
	"github.com/Abraxas-365/careerlens/careers/profile/profileapi"
	"github.com/Abraxas-365/careerlens/careers/review/reviewapi"
	"github.com/Abraxas-365/careerlens/pkg/config"
	"github.com/Abraxas-365/careerlens/pkg/fiberx"
	"github.com/Abraxas-365/careerlens/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Config and Logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting CareerLens API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "CareerLens API",
		DisableStartupMessage: true,
		BodyLimit:             12 << 20, // résumé uploads plus form overhead
		ErrorHandler:          fiberx.ErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		}
		if container.Mongo != nil {
			health["mongo"] = container.Mongo.Ping(c.Context(), nil) == nil
		}
		return c.JSON(health)
	})

	// 6. Register Routes

	// /api/auth/verify, /api/profile, /api/profile/map
	profileapi.RegisterRoutes(app, container.ProfileHandlers, container.AuthMiddleware)

	// /api/career/analyze-career, /api/career/ingest*, /api/career-results
	careerapi.RegisterRoutes(app, container.CareerHandlers, container.AuthMiddleware)

	// /api/career/analyze-resume
	reviewapi.RegisterRoutes(app, container.ReviewHandlers, container.AuthMiddleware)

	// /api/career/courses
	courseapi.RegisterRoutes(app, container.CourseHandlers)

	// /api/interview/*
	interviewapi.RegisterRoutes(app, container.InterviewHandlers, container.AuthMiddleware)

	// /api/jobs/search
	jobapi.RegisterRoutes(app, container.JobHandlers)

	// 7. Background ingestion workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	container.IngestWorker.Start(workerCtx)

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	stopWorkers()
	container.IngestWorker.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	container.Close(closeCtx)

	logx.Info("Server exited")
}
