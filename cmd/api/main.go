// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carterperez-dev/contacts-api/internal/auth"
	"github.com/carterperez-dev/contacts-api/internal/avatar"
	"github.com/carterperez-dev/contacts-api/internal/config"
	"github.com/carterperez-dev/contacts-api/internal/contact"
	"github.com/carterperez-dev/contacts-api/internal/core"
	"github.com/carterperez-dev/contacts-api/internal/health"
	"github.com/carterperez-dev/contacts-api/internal/mail"
	"github.com/carterperez-dev/contacts-api/internal/middleware"
	"github.com/carterperez-dev/contacts-api/internal/server"
	"github.com/carterperez-dev/contacts-api/internal/user"
	"github.com/go-chi/chi/v5"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "HS256",
		"session_ttl", cfg.JWT.SessionTTL.String(),
	)

	var mailer mail.Sender
	if cfg.Mail.Enabled {
		mailer = mail.NewResendSender(cfg.Mail, cfg.App.BaseURL)
		logger.Info("mail sender initialized", "sender", cfg.Mail.Sender)
	} else {
		mailer = mail.NewLogSender(logger, cfg.App.BaseURL)
		logger.Info("mail delivery disabled, logging verification links")
	}

	avatarStore, err := avatar.NewDiskStore(
		cfg.Avatar.Dir,
		cfg.Avatar.PublicPath,
	)
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(db.DB)
	authSvc := auth.NewService(userRepo, jwtManager, mailer, avatarStore, logger)
	authHandler := auth.NewHandler(authSvc)

	contactRepo := contact.NewRepository(db.DB)
	contactSvc := contact.NewService(contactRepo)
	contactHandler := contact.NewHandler(contactSvc)

	healthHandler := health.NewHandler(db)

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Logger:       logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Handle(
		cfg.Avatar.PublicPath+"/*",
		http.StripPrefix(
			cfg.Avatar.PublicPath+"/",
			http.FileServer(http.Dir(cfg.Avatar.Dir)),
		),
	)

	authenticator := middleware.Authenticator(authSvc)

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		contactHandler.RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	healthHandler.SetShutdown(true)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
