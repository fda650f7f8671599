package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/config"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/application/applicationapi"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company/companyapi"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing/listingapi"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/reconcile"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker/seekerapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = 5 * time.Minute

func main() {
	// 1. Load Config and Logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load config: %v", err)
	}
	logx.SetLevelString(cfg.Logger.Level)
	defer logx.Sync()
	logx.Infof("Starting %s (%s)...", cfg.App.Name, cfg.App.Env)

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, HEAD",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(c.UserContext()) == nil,
			"redis":  container.Redis.Ping(c.UserContext()).Err() == nil,
		})
	})

	// 6. Register Routes
	// Application routes share prefixes with /:id and /:email patterns
	// below and must come first.
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// /api/companies
	companyapi.RegisterRoutes(app, container.CompanyHandlers, container.AuthMiddleware)

	// /api/job-seekers
	seekerapi.RegisterRoutes(app, container.SeekerHandlers, container.AuthMiddleware)

	// /api/job-listings
	listingapi.RegisterRoutes(app, container.ListingHandlers, container.AuthMiddleware)

	// 7. Background Work
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	container.TelemetryWorker.Start(ctx)

	scheduler := cron.New()
	if cfg.Reconcile.Enabled {
		if _, err := reconcile.Schedule(scheduler, cfg.Reconcile.Cron, container.Sweeper, sweepTimeout); err != nil {
			logx.Fatalf("Invalid RECONCILE_CRON %q: %v", cfg.Reconcile.Cron, err)
		}
		scheduler.Start()
		logx.Infof("Reconciliation scheduled: %s", cfg.Reconcile.Cron)
	}

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on %s", cfg.App.Addr())
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	<-signals
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	<-scheduler.Stop().Done()
	stop()
	container.TelemetryWorker.Wait()

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

	// If it's our custom errx.Error
	if e, ok := errx.As(err); ok {
		if e.Type == errx.TypeInternal {
			logx.Errorf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
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
