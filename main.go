package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fantasy-draft/config"
	"fantasy-draft/handlers"
	"fantasy-draft/metrics"
	"fantasy-draft/middleware"
	"fantasy-draft/models"
	"fantasy-draft/repository"
	"fantasy-draft/services"
	"fantasy-draft/utils"
	"fantasy-draft/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run wires the service and blocks until SIGINT/SIGTERM. Every startup
// failure is returned so deferred cleanup still runs.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := repository.Open(cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	metrics.Register()

	achievementService := services.NewAchievementService(repository.NewAchievementRepository(db))
	if err := achievementService.SeedCatalog(context.Background(), models.AchievementCatalog); err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}

	draftService := services.NewDraftService(repository.NewDraftRepository(db), achievementService)

	if cfg.R2.Enabled() {
		r2, err := utils.NewR2Client(context.Background(), cfg.R2.AccountID, cfg.R2.AccessKeyID, cfg.R2.AccessKeySecret, cfg.R2.Bucket, cfg.R2.CDNBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize R2 client: %w", err)
		}
		draftService.Archiver = r2
		log.Printf("✅ Draft archives go to R2 bucket %s", cfg.R2.Bucket)
	} else {
		log.Println("⚠️  R2 not configured, draft archiving disabled")
	}

	var sweeper *workers.AutoPickSweeper
	if cfg.AutoPickURL != "" {
		draftService.AutoPicker = services.NewAutoPickClient(cfg.AutoPickURL, cfg.ServiceToken)
		sweeper = workers.NewAutoPickSweeper(draftService, cfg.AutoPickTimeout, cfg.AutoPickSweepInterval)
	} else {
		log.Println("⚠️  AUTOPICK_URL not set, auto-pick disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if sweeper != nil {
		if err := sweeper.Start(ctx); err != nil {
			return fmt.Errorf("failed to start auto-pick sweeper: %w", err)
		}
	}

	app := fiber.New()

	// 🔐❗ GLOBAL: Only Gateway requests allowed, except the in-cluster scrape
	app.Use(middleware.GatewayAuthMiddleware(cfg.ServiceToken, "/metrics"))

	allowedOrigins := strings.Join(cfg.AllowedOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	handlers.SetupRoutes(app, draftService, achievementService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Println("✅ GatewayAuthMiddleware enforced globally, all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")
	return app.Shutdown()
}
