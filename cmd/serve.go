package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/fleetops/api"
	"example.com/fleetops/config"
	"example.com/fleetops/internal/cache"
	"example.com/fleetops/internal/database"
	"example.com/fleetops/internal/messaging"
	"example.com/fleetops/internal/repository"
	"example.com/fleetops/internal/search"
	"example.com/fleetops/internal/service"
	"example.com/fleetops/internal/storage"
	"example.com/fleetops/internal/telemetry"
	"example.com/fleetops/internal/vision"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Serve command flags
	disableNewRelic bool
	disableWorker   bool
	serverPort      int
	gracefulTimeout int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Starts the fleet service API server that handles vehicle and driver
management, daily assignments, inspections and photo analysis.

The server respects the configuration in config.yaml or specified via the --config flag.
It will gracefully shut down on receiving SIGINT or SIGTERM signals.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Serve-specific flags
	serveCmd.Flags().BoolVar(&disableNewRelic, "disable-newrelic", false, "Disable New Relic monitoring")
	serveCmd.Flags().BoolVar(&disableWorker, "disable-worker", false, "Disable the analysis retry worker")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "Server port (overrides config file)")
	serveCmd.Flags().IntVar(&gracefulTimeout, "graceful-timeout", 30, "Graceful shutdown timeout in seconds")
}

// startServer initializes and starts the API server
func startServer() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override config with command line flags if provided
	if serverPort > 0 {
		cfg.Server.Port = serverPort
	}

	log.WithFields(logrus.Fields{
		"port":             cfg.Server.Port,
		"vision_enabled":   cfg.Vision.Enabled,
		"search_enabled":   cfg.Search.Enabled,
		"newrelic_enabled": cfg.NewRelic.Enabled && !disableNewRelic,
	}).Info("Initializing service components...")

	// Initialize database with retry logic
	var db database.DB
	maxRetries := 5
	retryInterval := time.Second

	for i := 0; i < maxRetries; i++ {
		log.WithField("attempt", i+1).Info("Connecting to database...")
		db, err = database.Connect(cfg.Database)
		if err == nil {
			break
		}

		log.WithFields(logrus.Fields{
			"error":         err.Error(),
			"retry_attempt": i + 1,
			"max_retries":   maxRetries,
		}).Error("Failed to connect to database, retrying...")

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			// Exponential backoff
			retryInterval *= 2
		}
	}

	if err != nil {
		log.Fatalf("Failed to connect to database after %d attempts: %v", maxRetries, err)
	}

	log.Info("Successfully connected to database")
	defer func() {
		log.Info("Closing database connection...")
		if err := db.Close(); err != nil {
			log.WithField("error", err.Error()).Error("Error closing database connection")
		}
	}()

	// Initialize Redis cache client
	log.Info("Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize messaging client
	log.Info("Connecting to message broker...")
	msgClient, err := messaging.NewServiceBusClient(cfg.ServiceBus, "fleet-service")
	if err != nil {
		log.Fatalf("Failed to connect to message broker: %v", err)
	}

	// Initialize the photo store
	log.Info("Initializing photo store...")
	photoStore, err := storage.NewPhotoStore(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize photo store: %v", err)
	}

	// Initialize the label detector
	log.Info("Initializing label detector...")
	detector, err := vision.NewLabelDetector(context.Background(), cfg.Vision)
	if err != nil {
		log.Fatalf("Failed to initialize label detector: %v", err)
	}

	// Initialize the search client; nil when search is disabled
	searchClient, err := search.NewClient(cfg.Search)
	if err != nil {
		log.Fatalf("Failed to connect to Elasticsearch: %v", err)
	}

	// Initialize New Relic if enabled
	nrApp, err := telemetry.InitNewRelic(cfg.NewRelic)
	if err != nil {
		log.Warnf("Failed to initialize New Relic: %v", err)
	}
	if disableNewRelic {
		nrApp = nil
	}

	// Create repositories
	log.Info("Initializing repositories...")
	repo := repository.NewRepository(db)

	// Create the service
	log.Info("Initializing service layer...")
	svc := service.NewService(repo, redisClient, msgClient, photoStore, detector, searchClient, cfg.Storage.Bucket, log)

	// Start the analysis retry worker
	if !disableWorker {
		interval := time.Duration(cfg.Worker.AnalysisRetryMinutes) * time.Minute
		if err := svc.StartAnalysisWorker(interval); err != nil {
			log.Fatalf("Failed to start analysis worker: %v", err)
		}
	}

	// Create and initialize the server
	log.Info("Initializing API server...")
	server := api.NewServer(cfg, log, nrApp, svc)

	// Set up graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"port": cfg.Server.Port,
		}).Info("Starting server...")

		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-stop
	log.Infof("Received signal %s, shutting down gracefully...", sig.String())

	// Create a timeout context for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(gracefulTimeout)*time.Second)
	defer cancel()

	// Shutdown HTTP server first so in-flight requests finish
	log.Info("Shutting down HTTP server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("Server shutdown error: %v", err)
	}

	// Shutdown service components
	log.Info("Shutting down service components...")
	if err := svc.Shutdown(ctx); err != nil {
		log.Warnf("Service shutdown error: %v", err)
	}

	log.Info("Server shutdown complete")
}
