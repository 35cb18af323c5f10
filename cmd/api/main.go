// Package main is the entry point for the Truck Spotter API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/harsha80956/truck-spotter-backend/internal/config"
	"github.com/harsha80956/truck-spotter-backend/internal/eld"
	"github.com/harsha80956/truck-spotter-backend/internal/handler"
	"github.com/harsha80956/truck-spotter-backend/internal/middleware"
	"github.com/harsha80956/truck-spotter-backend/internal/planner"
	"github.com/harsha80956/truck-spotter-backend/internal/repo"
	"github.com/harsha80956/truck-spotter-backend/internal/route"
	"github.com/harsha80956/truck-spotter-backend/internal/service"
)

// maxBodyBytes caps incoming request bodies. The largest legitimate payload
// is a plan request with three waypoints, so 1 MiB is generous.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Route estimation -------------------------------------------------
	// The mock source always exists: it backs the explicit mock mode and the
	// per-leg fallback when the real API errors. Seeded from the clock so
	// distinct runs draw distinct routes; tests seed it explicitly instead.
	mock := route.NewSeededMockSource(uint64(time.Now().UnixNano()))

	var (
		estimator route.Estimator
		geocoder  route.Geocoder
	)
	if !cfg.UseMockEstimator {
		maps, err := route.NewMapsClient(cfg.MapsAPIKey)
		if err != nil {
			slog.Error("failed to create maps client", "error", err)
			os.Exit(1)
		}
		estimator = maps
		geocoder = maps
		slog.Info("route estimation via directions API")
	} else {
		slog.Info("route estimation via mock source")
	}

	// --- Services ---------------------------------------------------------
	identity := eld.Identity{
		DriverName:    cfg.DriverName,
		CarrierName:   cfg.CarrierName,
		TruckNumber:   cfg.TruckNumber,
		TrailerNumber: cfg.TrailerNumber,
		OdometerBase:  cfg.OdometerBase,
	}

	tripRepo := repo.NewTripRepo(pool)
	logRepo := repo.NewLogRepo(pool)
	locationRepo := repo.NewLocationRepo(pool)

	builder := planner.NewBuilder(estimator, mock)
	tripService := service.NewTripService(builder, tripRepo)
	logService := service.NewLogService(tripRepo, logRepo, identity)
	locationService := service.NewLocationService(geocoder, mock, locationRepo)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → CORS →
	// body limit. RequestID generates a trace ID per request; RealIP sets
	// r.RemoteAddr from X-Forwarded-For (safe behind a proxy); SlogLogger
	// writes one structured JSON line per request; Recoverer turns panics
	// into HTTP 500 instead of crashing the process.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	server := handler.NewServer(tripService, logService, locationService)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
