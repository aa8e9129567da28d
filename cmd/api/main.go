package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zatekoja/smart-health-assistant/internal/adapters/cache"
	"github.com/zatekoja/smart-health-assistant/internal/adapters/database"
	"github.com/zatekoja/smart-health-assistant/internal/adapters/providers/ai"
	"github.com/zatekoja/smart-health-assistant/internal/adapters/providers/geosearch"
	"github.com/zatekoja/smart-health-assistant/internal/api/handlers"
	"github.com/zatekoja/smart-health-assistant/internal/api/routes"
	"github.com/zatekoja/smart-health-assistant/internal/application/services"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/clients/gemini"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/clients/redis"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/clients/sqlite"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/observability"
	"github.com/zatekoja/smart-health-assistant/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize Redis client. Connectivity failure is non-fatal: the
	// service runs in degraded mode with caching disabled.
	var cacheProvider providers.CacheProvider
	cacheAvailable := false
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, running without cache")
		cacheProvider = cache.NewNoopAdapter()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		cacheAvailable = true
		logger.Info().Msg("Redis client initialized successfully")
	}

	// Initialize SQLite user store
	sqliteClient, err := sqlite.NewClient(&cfg.SQLite)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize SQLite client")
	}
	defer sqliteClient.Close()
	userRepo := database.NewUserAdapter(sqliteClient)

	// Initialize the AI backend. No API key means mock triage only.
	var triageProvider providers.TriageProvider
	var textGenerator providers.TextGenerator
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewClient(&cfg.Gemini)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize AI client, using mock triage")
		} else {
			textGenerator = geminiClient
			triageProvider = ai.NewGeminiAdapter(geminiClient)
			logger.Info().Msg("AI client initialized successfully")
		}
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, triage responses will be mocked")
	}

	// Geosearch providers: keyed primary with keyless fallback.
	defaultOrigin := providers.Coordinates{
		Latitude:  cfg.Maps.DefaultLatitude,
		Longitude: cfg.Maps.DefaultLongitude,
	}

	var primary providers.GeosearchProvider
	var distanceProvider providers.DistanceProvider
	if cfg.Maps.APIKey != "" {
		googleAdapter := geosearch.NewGoogleAdapter(cfg.Maps.APIKey)
		primary = googleAdapter
		distanceProvider = googleAdapter
	} else {
		logger.Warn().Msg("GOOGLE_MAPS_API_KEY not set, using fallback geosearch only")
	}
	fallback := geosearch.NewOverpassAdapter(&cfg.Overpass)
	gateway := geosearch.NewChain(primary, fallback, defaultOrigin, metrics)

	// Application services
	ranker := services.NewRankingService(distanceProvider)
	triageService := services.NewTriageService(
		cacheProvider,
		triageProvider,
		gateway,
		ranker,
		defaultOrigin,
		metrics,
	)
	authService := services.NewAuthService(userRepo, &cfg.Auth)

	// HTTP layer
	router := routes.NewRouter(
		handlers.NewTriageHandler(triageService),
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(cacheAvailable),
		handlers.NewDebugHandler(textGenerator, cfg.Debug.AllowAIDebug),
		authService,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := cfg.Server.ListenAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	logger.Info().Msg("Server stopped")
}
