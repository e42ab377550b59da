package main

import (
	availStatus "slotcal-service/internal/http-server/handlers/availability/status"
	availToggle "slotcal-service/internal/http-server/handlers/availability/toggle"
	blockGet "slotcal-service/internal/http-server/handlers/blocks/get"
	calendarGet "slotcal-service/internal/http-server/handlers/calendar/get"
	meetingCancel "slotcal-service/internal/http-server/handlers/meetings/cancel"
	meetingConfirm "slotcal-service/internal/http-server/handlers/meetings/confirm"
	meetingCreate "slotcal-service/internal/http-server/handlers/meetings/create"
	meetingDefer "slotcal-service/internal/http-server/handlers/meetings/deferred"
	meetingGet "slotcal-service/internal/http-server/handlers/meetings/get"
	meetingReplay "slotcal-service/internal/http-server/handlers/meetings/replay"
	selectionClick "slotcal-service/internal/http-server/handlers/selection/click"
	summaryGet "slotcal-service/internal/http-server/handlers/summaries/get"
	summaryRecalc "slotcal-service/internal/http-server/handlers/summaries/recalculate"
	slotBulkCreate "slotcal-service/internal/http-server/handlers/timeslots/bulkcreate"
	slotBulkDelete "slotcal-service/internal/http-server/handlers/timeslots/bulkdelete"
	slotGet "slotcal-service/internal/http-server/handlers/timeslots/get"

	"slotcal-service/internal/app"
	"slotcal-service/internal/config"
	"slotcal-service/internal/intent"
	"slotcal-service/internal/lock"
	svc "slotcal-service/internal/service"
	"slotcal-service/internal/storage/postgres"
	slogpretty "slotcal-service/pkg/handlers/slogPretty"
	"slotcal-service/pkg/middleware/mwLogger"
	"slotcal-service/pkg/sl"

	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	migrator, err := app.NewMigrator(storage.DB(), cfg.MigrationsPath)
	if err != nil {
		log.Error("Failed to init migrator", sl.Err(err))
		os.Exit(1)
	}

	if err := migrator.Run(context.Background()); err != nil {
		log.Error("Failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Migrations applied", slog.Int64("version", version))
	}

	redisClient, err := lock.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis", sl.Err(err))
		os.Exit(1)
	}

	locker := lock.NewRedisLock(redisClient)
	intents := intent.New(redisClient)

	service := svc.NewService(storage, locker, intents, cfg.Booking)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Time Slots
	router.Get("/timeslots", slotGet.New(log, service))
	router.Post("/timeslots/bulk-create", slotBulkCreate.New(log, service))
	router.Post("/timeslots/bulk-delete", slotBulkDelete.New(log, service))

	// Blocks
	router.Get("/blocks", blockGet.New(log, service))

	// Selection
	router.Post("/selection/click", selectionClick.New(log, service))

	// Meetings
	router.Get("/meetings", meetingGet.New(log, service))
	router.Post("/meetings/create-session", meetingCreate.New(log, service))
	router.Post("/meetings/defer-session", meetingDefer.New(log, service))
	router.Post("/meetings/replay-session", meetingReplay.New(log, service))
	router.Post("/meetings/cancel-session", meetingCancel.New(log, service))
	router.Post("/meetings/confirm-session", meetingConfirm.New(log, service))

	// Availability
	router.Post("/availability/toggle", availToggle.New(log, service))
	router.Get("/availability/status", availStatus.New(log, service))

	// Daily Summaries
	router.Get("/daily-summaries", summaryGet.New(log, service))
	router.Post("/daily-summaries/recalculate", summaryRecalc.New(log, service))

	// Calendar
	router.Get("/calendar", calendarGet.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	} else {
		log.Debug("Storage is nil, nothing to close")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis", sl.Err(err))
		} else {
			log.Info("Redis closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
