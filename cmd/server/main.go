package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wesworld/site/internal/config"
	"github.com/wesworld/site/internal/handler"
	"github.com/wesworld/site/internal/logging"
	"github.com/wesworld/site/internal/mailer"
	"github.com/wesworld/site/internal/repository"
	"github.com/wesworld/site/internal/service"
	"github.com/wesworld/site/pkg/auth"
	"github.com/wesworld/site/web"
)

func main() {
	cfg, err := config.FromEnvironment()
	if err != nil {
		logging.Setup("", "")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	repo, closeStore := openStore(ctx, cfg)
	defer closeStore()

	notifier := mailer.New(cfg.Mail)
	if !notifier.Enabled() {
		slog.Warn("SMTP not configured, contact notifications disabled")
	}
	contactService := service.NewContactService(repo, notifier)

	var site fs.FS = web.Public()
	if cfg.StaticDir != "" {
		site = os.DirFS(cfg.StaticDir)
		slog.Info("serving static files from disk", "dir", cfg.StaticDir)
	}

	allowlist := auth.NewAllowlist(cfg.AdminAllowedIPs)
	if allowlist.Len() == 0 {
		slog.Warn("ADMIN_ALLOWED_IPS is empty, admin routes will deny every client")
	}

	var limiter *handler.RateLimiter
	if cfg.ContactRateLimit > 0 {
		limiter = handler.NewRateLimiter(cfg.ContactRateLimit, cfg.TrustedProxies)
		defer limiter.Close()
	}

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: handler.NewRouter(handler.RouterConfig{
			Site:           site,
			ContactService: contactService,
			Store:          repo,
			Allowlist:      allowlist,
			RateLimiter:    limiter,
			CORSOrigin:     cfg.CORSOrigin,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Leaves room for the SMTP dial inside a contact submission.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("WesWorld site running", "addr", server.Addr, "store", cfg.StoreDriver, "mail", notifier.Enabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// openStore returns the message repository selected by STORE_DRIVER and a
// function releasing its resources.
func openStore(ctx context.Context, cfg *config.Config) (repository.MessageRepository, func()) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		return repository.NewPgMessageRepository(pool), pool.Close
	default:
		repo := repository.NewJSONFileMessageRepository(cfg.DataDir)
		if err := repo.Ping(ctx); err != nil {
			logging.Fatal("data directory unavailable", "dir", cfg.DataDir, "error", err)
		}
		slog.Info("using JSON message store", "path", repo.Path())
		return repo, func() {}
	}
}
