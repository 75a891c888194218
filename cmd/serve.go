package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/myadmincaptiva/backend/internal/config"
	"github.com/myadmincaptiva/backend/internal/db"
	"github.com/myadmincaptiva/backend/internal/handler"
	"github.com/myadmincaptiva/backend/internal/ratelimit"
	"github.com/myadmincaptiva/backend/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	store, closeStore, err := openAccountStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	limiter, closeLimiter, err := openLoginLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	if cfg.Auth.JWTSecret == "" {
		log.Printf("Warning: AUTH_JWT_SECRET is not set; logins and guarded routes will fail")
	}
	if cfg.Auth.AdminUsername == "" || cfg.Auth.AdminPassword == "" {
		log.Printf("Warning: MYADMINCAPTIVA_USER/MYADMINCAPTIVA_PASS are not set; logins will fail")
	}

	codec := service.NewTokenCodec(cfg.Auth.JWTSecret)
	authSvc := service.NewAuthService(codec, limiter, cfg.Auth)
	hook := service.NewAccountHookService(cfg.Hook)
	if hook != nil {
		log.Printf("Account hook enabled: %s %s", cfg.Hook.Method, cfg.Hook.URL)
	}
	accountSvc := service.NewAccountService(store, hook)

	router := handler.NewRouter(handler.RouterConfig{
		Auth:           handler.NewAuthHandler(authSvc),
		Accounts:       handler.NewAccountHandler(accountSvc),
		Verifier:       authSvc,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s (storage=%s)", cfg.Server.Addr, cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openAccountStore(ctx context.Context, cfg config.Config) (db.AccountStore, func(), error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		return db.NewMemory(), func() {}, nil
	}

	dsn, err := cfg.Postgres.URL()
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.NewPostgresPool(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := db.NewPostgres(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	log.Printf("Connected to database")
	return store, pool.Close, nil
}

func openLoginLimiter(ctx context.Context, cfg config.Config) (*ratelimit.LoginLimiter, func(), error) {
	if cfg.Redis.URL == "" {
		return nil, func() {}, nil
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}

	limiter := ratelimit.NewLoginLimiter(client, ratelimit.LoginConfig{
		MaxAttempts: cfg.Auth.LoginMaxAttempts,
		Lockout:     cfg.Auth.LoginLockout,
	})
	return limiter, func() { _ = client.Close() }, nil
}
