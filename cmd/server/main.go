package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"shopyz-be/internal/admin"
	"shopyz-be/internal/api"
	"shopyz-be/internal/auth"
	"shopyz-be/internal/checkout"
	"shopyz-be/internal/comment"
	"shopyz-be/internal/config"
	"shopyz-be/internal/db"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/metrics"
	"shopyz-be/internal/middleware"
	"shopyz-be/internal/order"
	"shopyz-be/internal/product"
	"shopyz-be/internal/session"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	// warmupTimeout bounds the wait for the first delivery of each long-lived mirror.
	warmupTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal("invalid configuration", zap.Error(err))
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg)
	if err != nil {
		logger.L().Fatal("failed to start", zap.Error(err))
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.L().Info("server listening",
			zap.String("addr", httpServer.Addr),
			zap.String("backend", string(cfg.RealtimeBackend)),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

type server struct {
	handler  http.Handler
	sessions *session.Manager
	closers  []func()
}

// Close stops subscriptions and flushes pending session writes, in reverse start order.
func (s *server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.sessions.Flush()
}

func newServer(ctx context.Context, cfg *config.Config) (*server, error) {
	srv := &server{}

	database, closeDB, err := db.OpenRealtime(cfg)
	if err != nil {
		return nil, err
	}
	srv.closers = append(srv.closers, closeDB)

	srv.sessions = session.NewManager(sessionStorage(cfg))

	issuer, err := auth.NewIssuer(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	gate, err := admin.NewGate(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	productRepo := product.NewRepository(database)
	catalog := product.NewCatalog(ctx, productRepo)
	adminProducts := product.NewAdminService(ctx, productRepo)

	orderRepo := order.NewRepository(database)
	orders := order.NewService(orderRepo)
	ledger := order.NewLedger(ctx, orderRepo, cfg.ExportLocation)

	srv.closers = append(srv.closers, catalog.Close, adminProducts.Close, ledger.Close)
	warmUp(ctx, map[string]func(context.Context) error{
		"products":       catalog.Wait,
		"admin_products": adminProducts.Wait,
		"orders":         ledger.Wait,
	})

	limiter := middleware.NewLimiter()
	done := make(chan struct{})
	go limiter.Run(done)
	srv.closers = append(srv.closers, func() { close(done) })

	srv.handler = api.NewRouter(api.Deps{
		Catalog:     catalog,
		Comments:    comment.NewService(database),
		Orders:      orders,
		Checkout:    checkout.NewService(orders),
		Gate:        gate,
		Console:     admin.NewConsole(adminProducts, ledger),
		Sessions:    middleware.NewSessions(issuer, srv.sessions, cfg.IsProduction()),
		Limiter:     limiter,
		Metrics:     metrics.Default,
		CORSOrigins: cfg.CORSOrigins,
	})
	return srv, nil
}

// warmUp waits for the first delivery of every mirror concurrently. Mirrors still
// empty at the deadline keep loading in the background.
func warmUp(ctx context.Context, mirrors map[string]func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for name, wait := range mirrors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := wait(ctx); err != nil {
				logger.L().Warn("mirror not loaded at startup", zap.String("mirror", name), zap.Error(err))
			}
		}()
	}
	wg.Wait()
}

func sessionStorage(cfg *config.Config) session.Storage {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStorage()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	logger.L().Info("session storage on redis", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisStorage(client)
}
