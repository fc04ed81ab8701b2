package cmd

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"event-studio/config"
	"event-studio/handlers"
	"event-studio/internal/assist"
	"event-studio/internal/automationapi"
	"event-studio/internal/mediaapi"
	"event-studio/monitoring"
	"event-studio/security"
	"event-studio/services"
	"event-studio/utils"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)

	monitor := monitoring.NewMonitor()

	// Collaborator clients
	generator := assist.NewOpenAIGenerator(&assist.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.GenerationTimeout,
	})
	mediaClient := mediaapi.NewClient(cfg.MediaAPIBaseURL, cfg.MediaAPIKey, cfg.MediaTimeout, cfg.MediaMockMode)
	automationClient := automationapi.NewClient(cfg.AutomationAPIBaseURL, cfg.AutomationAPIKey, cfg.AutomationTimeout, cfg.Environment == "development")

	// Initialize services
	draftService := services.NewDraftService(redisClient, cfg.DraftTTL)
	eventStore := services.NewEventStore(app)
	automationService := services.NewAutomationService(automationClient, monitor)
	sessions := services.NewSessionManager(
		draftService,
		generator,
		mediaClient,
		eventStore,
		automationService,
		pn,
		monitor,
		cfg.AutosaveDelay,
		cfg.SessionIdleTTL,
		cfg.SessionSweepInterval,
	)

	rateLimiter := security.NewRateLimiter(redisClient, cfg.GenerationRateLimit, cfg.GenerationRateWindow)

	// Initialize handlers
	authoringHandler := handlers.NewAuthoringHandler(app, sessions, eventStore)
	generationHandler := handlers.NewGenerationHandler(app, sessions, rateLimiter)
	mediaHandler := handlers.NewMediaHandler(app, sessions)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Expose Prometheus metrics on a separate port
	if cfg.EnableMetrics {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	// Setup graceful shutdown
	go handleShutdown(sessions)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Draft endpoints
		e.Router.GET("/api/v1/authoring/draft", authoringHandler.GetDraft)
		e.Router.PATCH("/api/v1/authoring/draft", authoringHandler.UpdateDraft)
		e.Router.DELETE("/api/v1/authoring/draft", authoringHandler.Discard)
		e.Router.POST("/api/v1/authoring/validate", authoringHandler.Validate)
		e.Router.POST("/api/v1/authoring/publish", authoringHandler.Publish)
		e.Router.GET("/api/v1/authoring/published", authoringHandler.ListPublished)

		// Media endpoints
		e.Router.POST("/api/v1/authoring/media/images", mediaHandler.ProcessImages)
		e.Router.POST("/api/v1/authoring/media/video", mediaHandler.ProcessVideo)

		// Content generation endpoints
		e.Router.POST("/api/v1/authoring/generate/description", generationHandler.GenerateDescription)
		e.Router.POST("/api/v1/authoring/generate/optimize", generationHandler.Optimize)
		e.Router.POST("/api/v1/authoring/generate/event", generationHandler.AutoGenerate)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// handleShutdown flushes authoring sessions on termination.
func handleShutdown(sessions *services.SessionManager) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	sessions.Shutdown()
}
