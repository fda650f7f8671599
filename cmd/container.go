package main

import (
	"context"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/config"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/iam/auth"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/schema"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/application/applicationapi"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/application/applicationsrv"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/cascade"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company/companyapi"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company/companyinfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company/companysrv"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing/listingapi"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing/listinginfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing/listingsrv"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/reconcile"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker/seekerapi"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker/seekerinfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker/seekersrv"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry/telemetryinfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry/telemetrysrv"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry/worker"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// development fallback when JWT_SECRET is unset outside production
const devJWTSecret = "job-board-dev-secret-change-me"

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client
	Tx    txx.Manager

	// Auth
	TokenService   auth.TokenService
	AuthMiddleware fiber.Handler

	// Recruitment Services
	CompanyService     *companysrv.CompanyService
	SeekerService      *seekersrv.SeekerService
	ListingService     *listingsrv.ListingService
	ApplicationService *applicationsrv.ApplicationService
	Cascade            *cascade.Coordinator
	Sweeper            *reconcile.Sweeper

	// Telemetry
	TelemetryWorker *worker.EventWorker

	// API Handlers
	CompanyHandlers     *companyapi.Handlers
	SeekerHandlers      *seekerapi.Handlers
	ListingHandlers     *listingapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	db, err := sqlx.Connect("postgres", c.Config.Postgres.DSN)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Postgres.ConnMaxLifetime())
	c.DB = db
	c.Tx = txx.NewSQLManager(db)

	if err := schema.Migrate(context.Background(), db); err != nil {
		logx.Fatalf("Failed to migrate database: %v", err)
	}

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Token Service
	secret := c.Config.Auth.JWTSecret
	if secret == "" {
		if c.Config.App.IsProduction() {
			logx.Fatalf("JWT_SECRET is required in production")
		}
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		secret = devJWTSecret
	}
	c.TokenService = auth.NewJWTService(secret, c.Config.Auth.AccessTokenTTL(), c.Config.App.Name)
	c.AuthMiddleware = auth.Middleware(c.TokenService)
}

func (c *Container) initServices() {
	// --- Repositories ---
	companyRepo := companyinfra.NewPostgresCompanyRepository(c.DB)
	seekerRepo := seekerinfra.NewPostgresSeekerRepository(c.DB)
	listingRepo := listinginfra.NewPostgresListingRepository(c.DB)
	eventRepo := telemetryinfra.NewPostgresEventRepository(c.DB)

	// --- Telemetry ---
	queue := telemetryinfra.NewRedisQueue(c.Redis, c.Config.Telemetry.QueueName)
	recorder := telemetrysrv.NewQueueRecorder(queue, c.Config.Telemetry.EnqueueTimeout())
	c.TelemetryWorker = worker.NewEventWorker(telemetrysrv.NewService(eventRepo), queue, c.Config.Telemetry.Workers)

	// --- Domain Services ---
	hasher := auth.NewBcryptHasher(c.Config.Auth.BcryptCost)
	c.Cascade = cascade.NewCoordinator(listingRepo, seekerRepo, companyRepo)
	c.Sweeper = reconcile.NewSweeper(listingRepo, seekerRepo, c.Tx)

	c.CompanyService = companysrv.NewCompanyService(companyRepo, c.Cascade, c.Tx, hasher, c.TokenService)
	c.SeekerService = seekersrv.NewSeekerService(seekerRepo, c.Cascade, c.Tx, hasher, c.TokenService)
	c.ListingService = listingsrv.NewListingService(listingRepo, companyRepo, c.Cascade)
	c.ApplicationService = applicationsrv.NewApplicationService(listingRepo, seekerRepo, c.Tx, recorder)

	// --- Handlers ---
	c.CompanyHandlers = companyapi.NewHandlers(c.CompanyService)
	c.SeekerHandlers = seekerapi.NewHandlers(c.SeekerService)
	c.ListingHandlers = listingapi.NewHandlers(c.ListingService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
}

// Close releases the database and Redis connections
func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Failed to close Redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Failed to close database: %v", err)
	}
}
