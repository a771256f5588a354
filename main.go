// File: bookly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookly/config"
	"bookly/handlers"
	"bookly/middleware"
	"bookly/routes"
	"bookly/services/agent"
	"bookly/services/calendar"
	ai "bookly/services/intelligence"
	"bookly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Calendar gateway: the variant is fixed here at construction time. A
	// missing or broken credential setup degrades to the stub, never fails
	// the process.
	var gateway calendar.Gateway
	if cfg.GoogleCredentialsFile == "" {
		logger.Info("main: no calendar credentials configured, using stub gateway")
		gateway = calendar.NewStubGateway(nil)
	} else {
		gw, err := calendar.NewGoogleGateway(context.Background(), cfg.GoogleCredentialsFile,
			time.Duration(cfg.CalendarTimeoutSeconds)*time.Second)
		if err != nil {
			logger.Warn("main: failed to initialize Google Calendar gateway, using stub",
				zap.Error(err))
			gateway = calendar.NewStubGateway(nil)
		} else {
			gateway = gw
		}
	}

	// Text generator: same degradation policy as the gateway.
	var generator ai.TextGenerator
	if cfg.GeminiAPIKey == "" {
		logger.Info("main: no Gemini API key configured, text generation disabled")
		generator = ai.DisabledGenerator{}
	} else {
		gen, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel,
			time.Duration(cfg.LLMTimeoutSeconds)*time.Second)
		if err != nil {
			logger.Warn("main: failed to initialize Gemini client, text generation disabled",
				zap.Error(err))
			generator = ai.DisabledGenerator{}
		} else {
			generator = gen
		}
	}

	// Session store: Redis when reachable, in-memory otherwise.
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	var store agent.SessionStore
	redisClient, err := utils.InitSessionCache()
	if err != nil {
		logger.Warn("main: Redis unreachable, using in-memory session store", zap.Error(err))
		store = agent.NewMemorySessionStore(sessionTTL)
	} else {
		store = agent.NewRedisSessionStore(redisClient, sessionTTL)
	}

	slotOpts := calendar.FreeSlotOptions{
		DurationMinutes:    cfg.DefaultDurationMinutes,
		GranularityMinutes: cfg.SlotGranularityMinutes,
		BusinessOpenHour:   cfg.BusinessOpenHour,
		BusinessCloseHour:  cfg.BusinessCloseHour,
		MaxResults:         cfg.MaxSlotResults,
	}

	agentService := &agent.DefaultAgentService{
		Classifier: &ai.IntentClassifier{Gen: generator},
		Composer:   &ai.SuggestionComposer{Gen: generator},
		Gateway:    gateway,
		Store:      store,
		CalendarID: cfg.CalendarID,
		SlotOpts:   slotOpts,
	}

	chatHandler := handlers.NewChatHandler(agentService, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(gateway, cfg.CalendarID, slotOpts)

	handlerBundle := &routes.HandlerBundle{
		Chat:         chatHandler,
		Availability: availabilityHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(redisClient, map[string]utils.DependencyProbe{
		"calendar": func(ctx context.Context) error {
			_, err := gateway.ListEvents(ctx, cfg.CalendarID, time.Now(), time.Now().Add(time.Minute))
			return err
		},
	})

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
