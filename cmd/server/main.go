package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/ai-survey-backend/internal/config"
	"github.com/AnshRaj112/ai-survey-backend/internal/database"
	"github.com/AnshRaj112/ai-survey-backend/internal/handlers"
	"github.com/AnshRaj112/ai-survey-backend/internal/middleware"
	"github.com/AnshRaj112/ai-survey-backend/internal/routes"
	"github.com/AnshRaj112/ai-survey-backend/internal/services"
	"github.com/AnshRaj112/ai-survey-backend/pkg/clientip"
	"github.com/AnshRaj112/ai-survey-backend/pkg/logger"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logg.Sync()

	if envErr != nil {
		logg.Debug("No .env file found")
	}

	if err := run(cfg, logg); err != nil {
		logg.Fatal("server exited", "error", err)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeStore()

	var notifier services.Notifier
	smtpCfg := services.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		To:       cfg.NotifyEmail,
	}
	if smtpCfg.Enabled() {
		n, err := services.NewSMTPNotifier(smtpCfg)
		if err != nil {
			logg.Warn("Email notifications disabled", "error", err)
		} else {
			notifier = n
			logg.Info("Email notifications enabled", "smtp_host", cfg.SMTPHost, "smtp_port", cfg.SMTPPort)
		}
	} else {
		logg.Warn("SMTP_HOST or NOTIFY_EMAIL not set, submissions will not be emailed")
	}

	svc := services.NewSurveyService(store, notifier, logg)
	ipFunc := clientip.Resolver(cfg.TrustProxy)

	var submitLimits []func(http.Handler) http.Handler
	if cfg.IsProduction() {
		submitLimits = append(submitLimits, middleware.SubmitRateLimit(ctx, ipFunc))
	}
	if cfg.RedisURI != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			logg.Warn("Redis unavailable, shared submit rate limit disabled", "error", err)
		} else {
			defer rdb.Close()
			submitLimits = append(submitLimits, middleware.NewRedisRateLimiter(rdb, ipFunc, logg).Middleware)
			logg.Info("Connected to Redis")
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logg))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(ctx, ipFunc) {
			r.Use(mw)
		}
		logg.Info("Production security enabled (security headers, per-IP rate limiting)")
	}

	routes.SetupRoutes(r, routes.Handlers{
		Survey:       handlers.NewSurveyHandler(svc, logg),
		Form:         handlers.NewFormHandler(svc, logg),
		SubmitLimits: submitLimits,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("AI survey backend running", "addr", srv.Addr, "store", cfg.StoreDriver, "notifications", svc.NotificationsEnabled())
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

	logg.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects the configured storage driver. The returned func
// releases its connection.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (services.SurveyStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		logg.Info("Connecting to MongoDB...", "uri", database.MaskURI(cfg.MongoURI))
		m, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		store := services.NewMongoStore(m.DB)
		if err := store.EnsureIndexes(ctx); err != nil {
			logg.Warn("failed to ensure MongoDB survey indexes", "error", err)
		}
		logg.Info("Connected to MongoDB", "database", m.DB.Name())
		return store, func() {
			if err := m.Disconnect(); err != nil {
				logg.Warn("MongoDB disconnect failed", "error", err)
			}
		}, nil

	case config.DriverPostgres:
		logg.Info("Connecting to PostgreSQL...", "uri", database.MaskURI(cfg.PostgresURI))
		db, err := database.ConnectPostgres(ctx, cfg.PostgresURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to PostgreSQL: %w", err)
		}
		logg.Info("Connected to PostgreSQL")
		return services.NewPostgresStore(db), func() { db.Close() }, nil

	case config.DriverMemory:
		logg.Warn("Using in-memory store, responses are lost on restart")
		return services.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
