package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"subtrack/core/config"
	"subtrack/core/database"
	"subtrack/core/logger"
	"subtrack/core/storage"

	"subtrack/feature/charges"
	"subtrack/feature/credentials"
	"subtrack/feature/sync"
	"subtrack/feature/sync/provider"
	"subtrack/feature/usagelog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd runs one sync pass from the command line, without the server.
// Useful for crontab setups that prefer a process over an HTTP call.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one usage sync pass",
	Long:  `Fetches usage for every active credential, reconciles the charge ledger and prints the report as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.AutoMigrate(&charges.Charge{}, &credentials.Credential{}, &usagelog.Entry{}); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}

		var store storage.Client
		if cfg.Sync.ArchiveEnabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Warn("Report archiving disabled, storage client failed", zap.Error(err))
			}
		}

		feature := sync.NewFeature(db, logg, provider.DefaultRegistry(), store, cfg.Server.CronSecret, sync.Options{
			ProviderTimeout: time.Duration(cfg.Sync.ProviderTimeoutSeconds) * time.Second,
			DefaultCategory: cfg.Sync.DefaultCategory,
			ArchiveEnabled:  cfg.Sync.ArchiveEnabled,
			ArchiveBucket:   cfg.Storage.Bucket,
		})

		report, err := feature.Service().RunSync(context.Background())
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
