package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meetcost-team/meetcost/pkg/validator"

	"github.com/meetcost-team/meetcost/internal/adapter/handler"
	"github.com/meetcost-team/meetcost/internal/adapter/repository"
	"github.com/meetcost-team/meetcost/internal/infrastructure/cache"
	"github.com/meetcost-team/meetcost/internal/infrastructure/database"
	"github.com/meetcost-team/meetcost/internal/infrastructure/storage"
	"github.com/meetcost-team/meetcost/internal/usecase/analytics"
	"github.com/meetcost-team/meetcost/internal/usecase/costing"
	"github.com/meetcost-team/meetcost/internal/usecase/meeting"
	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
	"github.com/meetcost-team/meetcost/pkg/config"
	"github.com/meetcost-team/meetcost/pkg/jwt"
)

// @title           MeetCost API
// @version         1.0
// @description     Meeting cost accrual and reconciliation API

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	presenceRepo := repository.NewPresenceRepository(db)
	costRepo := repository.NewCostRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize cost archive storage
	var archiver tracker.CostArchiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Initializing cost archive storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO: %v", err)
		}
		archiver = minioClient
		log.Println("✅ Cost archive storage initialized")
	} else {
		log.Println("⚠️  Cost archive storage disabled; finalized costs will not be archived")
	}

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize the cost engine
	log.Println("🧮 Initializing cost engine...")
	rates := costing.NewRateTable(cfg.Costing.FallbackHourlyRate)
	reconciler := costing.NewReconciler(rates, cfg.Costing.LateGrace)
	reconciler.RoomCostScheduled = cfg.Costing.RoomCostScheduled

	// Snapshot store keeps running trackers recoverable across restarts
	snapshots := cache.NewSnapshotStore(redisClient, cfg.Costing.SnapshotTTL, logger)

	// Initialize tracker service
	log.Println("⏱️  Initializing cost tracker service...")
	trackerService := tracker.NewService(reconciler, costRepo, analyticsRepo, snapshots, archiver, nil, logger)

	// Initialize meeting service
	log.Println("📅 Initializing meeting service...")
	meetingService := meeting.NewMeetingService(
		meetingRepo,
		participantRepo,
		presenceRepo,
		roomRepo,
		userRepo,
		costRepo,
		analyticsRepo,
		trackerService,
		reconciler,
		nil,
		logger,
	)

	// Recover trackers for meetings that were running before a restart
	log.Println("♻️  Restoring running cost trackers...")
	if err := meetingService.RestoreTrackers(context.Background()); err != nil {
		log.Printf("⚠️  Failed to restore cost trackers: %v", err)
	}

	// Initialize analytics service
	log.Println("📊 Initializing analytics service...")
	analyticsService := analytics.NewService(costRepo, analyticsRepo, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	costHandler := handler.NewCostHandler(meetingService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, meetingHandler, costHandler, analyticsHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
