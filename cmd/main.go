package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/tollway/internal/config"
	"github.com/UnknownOlympus/tollway/internal/directions"
	"github.com/UnknownOlympus/tollway/internal/handler"
	"github.com/UnknownOlympus/tollway/internal/metrics"
	"github.com/UnknownOlympus/tollway/internal/repository"
	"github.com/UnknownOlympus/tollway/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 10 * time.Second

// pinger is satisfied by every toll station store.
type pinger interface {
	Ping(ctx context.Context) error
}

// schemaEnsurer is implemented by stores that manage their own schema.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)
	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	storeConfig := repository.StoreConfig{
		Type:   repository.StoreType(cfg.StoreType),
		Logger: logger,
	}

	// Initialize the database connection only when the postgres store is selected.
	if storeConfig.Type == repository.StoreTypePostgres {
		dtb, err := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer dtb.Close()
		storeConfig.DB = dtb
	}

	store, err := repository.NewStore(storeConfig)
	if err != nil {
		log.Fatalf("Failed to create toll store: %v", err)
	}

	if migrator, ok := store.(schemaEnsurer); ok {
		if err = migrator.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
	}

	if cfg.SeedPath != "" {
		count, seedErr := repository.SeedFromJSON(ctx, store, cfg.SeedPath)
		if seedErr != nil {
			log.Fatalf("Failed to seed toll stations: %v", seedErr)
		}
		logger.InfoContext(ctx, "Toll stations seeded", "count", count, "path", cfg.SeedPath)
	}

	logger.InfoContext(ctx, "Toll store initialized", "type", cfg.StoreType)

	corridorService := service.NewCorridorService(logger, store, appMetrics, cfg.DefaultRadiusKm)
	tollService := service.NewTollService(logger, store, appMetrics)

	// Directions are optional, the endpoint stays unregistered without an API key.
	var routeProvider directions.Provider
	if cfg.GoogleAPIKey != "" {
		googleProvider, providerErr := directions.NewGoogleProviderFromKey(cfg.GoogleAPIKey, cfg.DirectionsRateLimit, logger)
		if providerErr != nil {
			log.Fatalf("Failed to create directions provider: %v", providerErr)
		}
		routeProvider = &instrumentedDirections{provider: googleProvider, metrics: appMetrics}
	}

	api := handler.New(logger, corridorService, tollService, routeProvider, cfg.RequestTimeout)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.NewRouter(logger, api, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "port", cfg.Port)

	// Start the monitoring server in a goroutine to allow main to listen for signals.
	monitoringServer := newMonitoringServer(ctx, logger, reg, store, cfg.MonitoringPort)
	go serve(ctx, logger, monitoringServer, "Monitoring server failed")

	go func() {
		if serveErr := serve(ctx, logger, apiServer, "API server failed"); serveErr != nil {
			stop()
		}
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = apiServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Failed to shut down API server", "error", err)
	}
	if err = monitoringServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Failed to shut down monitoring server", "error", err)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// instrumentedDirections counts failed directions lookups.
type instrumentedDirections struct {
	provider directions.Provider
	metrics  *metrics.Metrics
}

func (d *instrumentedDirections) Route(ctx context.Context, from, to string) (*directions.Route, error) {
	route, err := d.provider.Route(ctx, from, to)
	if err != nil {
		d.metrics.DirectionsErrors.Inc()
	}

	return route, err
}

// newMonitoringServer builds an HTTP server that provides health check and metrics endpoints.
// The caller starts it and shuts it down.
//
// Parameters:
// - ctx: A context.Context used for logging.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - store: The toll station store, pinged by the health check.
// - port: The port number on which the server will listen.
func newMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	store pinger,
	port int,
) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := store.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "store ping failed"
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	readTimeout := 5
	writeTimeout := 10

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
}

// serve runs server until it fails or is shut down. A shutdown is not logged as a failure.
func serve(ctx context.Context, log *slog.Logger, server *http.Server, failure string) error {
	log.InfoContext(ctx, "Starting server", "addr", server.Addr)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	log.ErrorContext(ctx, failure, "error", err)

	return err
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}

	return a
}
