package cmd

import (
	"context"
	"log"
	"time"

	"member-api/core/apperror"
	"member-api/core/config"
	"member-api/core/database"
	"member-api/core/loader"
	"member-api/core/logger"
	"member-api/core/metrics"
	"member-api/core/middleware/auth"
	"member-api/core/middleware/rayid"
	"member-api/core/storage"

	"member-api/feature/health"
	"member-api/feature/member"
	"member-api/feature/skills"
	"member-api/feature/statistics"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "member-api/docs/swagger"
)

// @title Member API
// @version 1.0
// @description API for member profiles, skills and statistics.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the member API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if cfg.Server.JWTSecret == "" {
			logg.Warn("SERVER_JWT_SECRET is empty, every bearer token will be rejected")
		}

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Storage.Timeout())
		if err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Photo bucket is not available", zap.Error(err))
		}
		cancel()

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          apperror.Handler,
			BodyLimit:             cfg.Server.BodyLimit(),
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		var metricsManager *metrics.Manager
		if cfg.Metrics.Enabled {
			metricsManager = metrics.NewManager()
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		// health precedes member so /members/health is not taken as a handle
		mgr.Register(health.NewFeature(db, store, cfg.Storage.Bucket, allModels(), logg))
		mgr.Register(member.NewFeature(db, store, cfg.Storage, cfg.Stats.MemberSecureFieldList(), logg))
		mgr.Register(statistics.NewFeature(db, cfg.Stats, metricsManager, logg))
		mgr.Register(skills.NewFeature(db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Metrics
		if metricsManager != nil {
			app.Use(metricsManager.Middleware())
			app.Get(cfg.Metrics.Path, metricsManager.Handler())
		}

		// 3.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (anonymous reads, bearer tokens for writes)
		app.Use(auth.New(auth.Config{Secret: cfg.Server.JWTSecret}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		<-cmd.Context().Done()
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
