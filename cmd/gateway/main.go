package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	api "github.com/mind-engage/mindengage-grades/internal/api/http"
	auth "github.com/mind-engage/mindengage-grades/internal/auth/middleware"
	"github.com/mind-engage/mindengage-grades/internal/config"
	"github.com/mind-engage/mindengage-grades/internal/db"
	"github.com/mind-engage/mindengage-grades/internal/exam"
	"github.com/mind-engage/mindengage-grades/internal/logging"
	"github.com/mind-engage/mindengage-grades/internal/metrics"
	"github.com/mind-engage/mindengage-grades/internal/ratelimit"
	syncx "github.com/mind-engage/mindengage-grades/internal/sync"
)

func main() {
	// .env is optional; process env wins over it
	dotenvErr := godotenv.Load()
	cfg := config.FromEnv()

	logger := logging.New(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync()
	if dotenvErr != nil {
		logger.Debug("no .env file, using process env")
	}

	runCtx, stopRun := context.WithCancel(context.Background())
	defer stopRun()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer dbh.Close()
	store := exam.NewSQLStore(dbh, cfg.DBDriver)
	events := syncx.NewEventRepo(dbh)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	var m *metrics.Metrics
	if cfg.EnableMetrics {
		m = metrics.New(prometheus.NewRegistry())
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.RequestLogger(logger), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Local login (on by default; dev logins only in offline mode)
	if cfg.EnableLocalAuth {
		limiter := ratelimit.New(cfg.LoginRatePerMin, time.Minute)
		go limiter.Run(runCtx, 10*time.Minute)
		r.With(limiter.Middleware).Post("/auth/login", auth.LoginHandler(authSvc, auth.LoginOptions{
			AdminUser:     cfg.AdminUser,
			AdminPassHash: cfg.AdminPassHash,
			AllowDevLogin: cfg.Mode == config.ModeOffline,
		}))
	}

	api.MountAPI(r, api.Deps{
		Store:    store,
		Events:   events,
		Auth:     authSvc,
		Defaults: api.Defaults{Rules: cfg.Rules, Weights: cfg.Weights},
		Metrics:  m,
		Log:      logger,
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("mode", string(cfg.Mode)),
			zap.String("db", cfg.DBDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("stopped")
}
