// Package main initializes and starts the fitness tracker HTTP server,
// setting up configuration, logging, the database connection, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/fitkeeper/fittrack/internal/config"
	"github.com/fitkeeper/fittrack/internal/db"
	"github.com/fitkeeper/fittrack/internal/logger"
	"github.com/fitkeeper/fittrack/internal/repository"
	"github.com/fitkeeper/fittrack/internal/server/handler/http"
	"github.com/fitkeeper/fittrack/internal/service"
	"github.com/fitkeeper/fittrack/internal/workouts"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for credentials and goals.
	credentialRepo := repository.NewPostgresCredentialRepository(postgresDB)
	goalRepo := repository.NewPostgresGoalRepository(postgresDB)

	// Initialize business-logic services.
	credentialService := service.NewCredentialService(credentialRepo)
	goalService := service.NewGoalService(goalRepo)

	// Initialize the workout catalog client and store.
	catalogClient := workouts.NewClient(options.CatalogURL, zapLogger)
	catalog := workouts.NewCatalog(catalogClient)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: credentialService}
	goalsHandler := &http.GoalsHandler{GoalsService: goalService, Progress: goalRepo}
	workoutsHandler := &http.WorkoutsHandler{Catalog: catalog}
	healthHandler := &http.HealthHandler{DB: postgresDB}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, goalsHandler, workoutsHandler, healthHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
