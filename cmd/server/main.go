package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/studycards/backend/internal/api"
	"github.com/studycards/backend/internal/auth"
	practicesession "github.com/studycards/backend/internal/domain/practice_session"
	"github.com/studycards/backend/internal/infrastructure/config"
	"github.com/studycards/backend/internal/scheduler"
	"github.com/studycards/backend/internal/service"
	"github.com/studycards/backend/internal/simulation"
	"github.com/studycards/backend/internal/statscache"
	"github.com/studycards/backend/internal/store"
	"github.com/studycards/backend/internal/worker"

	_ "github.com/studycards/backend/docs" // generated swagger docs
)

// @title           Studycards API
// @version         1.0
// @description     Adaptive multiple-choice study queues with per-user progress.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	ctx := context.Background()
	db, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err, "driver", cfg.DBDriver)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.SeedDemo {
		if _, err := simulation.SeedDemo(ctx, db, logger); err != nil {
			logger.Error("failed to seed demo set", "error", err)
		}
	}

	pool := worker.NewPool(cfg.RecorderWorkers, cfg.RecorderBuffer, 10*time.Second, logger)
	recorder := service.NewProgressRecorder(db, pool, logger)
	cache := statscache.New()

	sessionCfg := practicesession.DefaultConfig()
	sessionCfg.AutoAdvance = cfg.AutoAdvance
	sessionCfg.Recorders = []practicesession.Recorder{recorder, cache}
	study := service.NewStudyService(db, db, cache, sessionCfg, logger)

	authSvc := auth.NewService(db, auth.Config{
		Secret:      cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		AdminEmails: cfg.AdminEmails,
	})

	janitor := scheduler.New(study, db, cfg.StudySessionIdleTTL, logger)
	if err := janitor.Start(); err != nil {
		logger.Error("failed to start janitor", "error", err)
		os.Exit(1)
	}

	handler := api.NewHandler(api.Deps{
		Sets:     db,
		Progress: db,
		Study:    study,
		Recorder: recorder,
		Cache:    cache,
		Auth:     authSvc,
		Logger:   logger,
	})

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(cfg.CORSOrigins)(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "driver", cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}

	// Stop producing events before draining the recorder queue.
	janitor.Stop()
	study.Close()
	pool.Close()
}
