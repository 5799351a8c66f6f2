package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subtrack/core/config"
	"subtrack/core/database"
	"subtrack/core/loader"
	"subtrack/core/logger"
	"subtrack/core/middleware/auth"
	"subtrack/core/middleware/rayid"
	"subtrack/core/storage"

	"subtrack/feature/charges"
	"subtrack/feature/credentials"
	"subtrack/feature/sync"
	"subtrack/feature/sync/provider"
	"subtrack/feature/usagelog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "subtrack/docs/swagger"
)

// @title Subtrack API
// @version 1.0
// @description API for the subscription tracker: charges, provider credentials, usage history and sync triggers.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the subscription tracker server",
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

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&charges.Charge{}, &credentials.Credential{}, &usagelog.Entry{}); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// 4. Initialize Storage (Optional, only used for report archiving)
		var store storage.Client
		if cfg.Sync.ArchiveEnabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Warn("Report archiving disabled, storage client failed", zap.Error(err))
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(charges.NewFeature(db, logg))
		mgr.Register(credentials.NewFeature(db, logg))
		mgr.Register(usagelog.NewFeature(db, logg, cfg.Sync.HistoryLimit))
		mgr.Register(sync.NewFeature(db, logg, provider.DefaultRegistry(), store, cfg.Server.CronSecret, sync.Options{
			ProviderTimeout: time.Duration(cfg.Sync.ProviderTimeoutSeconds) * time.Second,
			DefaultCategory: cfg.Sync.DefaultCategory,
			ArchiveEnabled:  cfg.Sync.ArchiveEnabled,
			ArchiveBucket:   cfg.Storage.Bucket,
		}))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

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
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
