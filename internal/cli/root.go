// Package cli holds the operator commands run against the realtime store outside the
// HTTP server.
package cli

import (
	"time"

	"shopyz-be/internal/config"
	"shopyz-be/internal/db"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/realtime"

	"github.com/spf13/cobra"
)

// Backend is an opened realtime store plus the settings commands need alongside it.
type Backend struct {
	DB       realtime.Database
	Location *time.Location
	Close    func()
}

// Opener connects to the configured backend. Commands call it lazily so --help works
// without any environment.
type Opener func() (*Backend, error)

// OpenFromEnv loads the process configuration and opens its realtime backend.
func OpenFromEnv() (*Backend, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.AppEnv)

	database, release, err := db.OpenRealtime(cfg)
	if err != nil {
		return nil, err
	}
	return &Backend{DB: database, Location: cfg.ExportLocation, Close: release}, nil
}

func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "shopyzctl",
		Short: "Shopyz store operator tools",
		Long: `shopyzctl works directly against the store's realtime database.

It can load the demo catalog, export or total the order ledger, and compress
product photos into the data URIs the admin console stores.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newSeedCommand(open),
		newExportOrdersCommand(open),
		newRevenueCommand(open),
		newCompressImageCommand(),
	)
	return root
}
