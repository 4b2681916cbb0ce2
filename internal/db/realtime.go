package db

import (
	"database/sql"

	"shopyz-be/internal/config"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/realtime"

	"go.uber.org/zap"
)

// OpenRealtime builds the configured realtime backend. The returned func releases
// whatever connections the backend holds.
func OpenRealtime(cfg *config.Config) (realtime.Database, func(), error) {
	switch cfg.RealtimeBackend {
	case config.BackendFirebase:
		var opts []realtime.FirebaseOption
		if cfg.FirebaseAuth != "" {
			opts = append(opts, realtime.WithAuth(cfg.FirebaseAuth))
		}
		return realtime.NewFirebase(cfg.FirebaseURL, cfg.HTTPTimeout, opts...), func() {}, nil

	case config.BackendPostgres:
		sqlDB, err := NewDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		notifier, err := realtime.NewPQNotifier(DSN(cfg))
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return realtime.NewPostgres(sqlDB, notifier), closeAll(notifier, sqlDB), nil

	default:
		logger.L().Warn("using in-memory realtime backend, data is lost on restart")
		return realtime.NewMemory(), func() {}, nil
	}
}

func closeAll(notifier realtime.Notifier, sqlDB *sql.DB) func() {
	return func() {
		if err := notifier.Close(); err != nil {
			logger.L().Warn("failed to close notifier", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.L().Warn("failed to close database", zap.Error(err))
		}
	}
}
