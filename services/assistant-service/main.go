package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/services/assistant-service/controllers"
	"github.com/corexathletics/storefront/services/assistant-service/providers"
	"github.com/corexathletics/storefront/services/assistant-service/routes"
	"github.com/corexathletics/storefront/services/assistant-service/services"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/common/logger"
	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "assistant-service"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	ctx := context.Background()
	awsCfg, awsErr := awspkg.LoadAWSConfig(ctx)

	var shipper io.Writer
	if cfg.CloudWatchEnabled && awsErr == nil {
		if w, err := awspkg.NewCloudWatchLogsWriter(ctx, awsCfg, cfg.LogGroup, serviceName); err == nil {
			shipper = w
		}
	}
	log, err := logger.New(cfg.Env, serviceName, shipper)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	var metrics *awspkg.MetricsClient
	if awsErr != nil {
		log.Warn("AWS config unavailable, metrics disabled", zap.Error(awsErr))
	} else {
		metrics = awspkg.NewMetricsClient(awsCfg, "", cfg.MetricsEnabled)
	}

	var provider providers.ChatProvider
	switch cfg.Provider {
	case ProviderGemini:
		provider, err = providers.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, int32(cfg.MaxTokens), log)
	default:
		groq := providers.DefaultGroqConfig(cfg.GroqAPIKey)
		groq.BaseURL = cfg.GroqBaseURL
		groq.Model = cfg.GroqModel
		groq.MaxTokens = cfg.MaxTokens
		groq.Timeout = cfg.Timeout
		provider, err = providers.NewGroqProvider(groq, log)
	}
	if err != nil {
		log.Fatal("Chat provider init failed", zap.String("provider", cfg.Provider), zap.Error(err))
	}

	chatService := services.NewChatService(provider, catalog.Default().Names(), metrics, log)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(metrics, serviceName),
		middleware.SecurityHeaders(),
		middleware.CORS(middleware.ParseOrigins(cfg.AllowedOrigins)),
		middleware.Timeout(cfg.Timeout+5*time.Second),
		apperrors.ErrorMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName, "provider": provider.Name()})
	})
	routes.RegisterAssistantRoutes(r, controllers.NewAssistantController(chatService), cfg.RatePerMinute, cfg.RateBurst)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Assistant Service started", zap.String("port", cfg.Port), zap.String("provider", provider.Name()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	log.Info("Assistant Service stopped")
}
