package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corexathletics/storefront/api-gateway/proxy"
	"github.com/corexathletics/storefront/api-gateway/routes"
	"github.com/corexathletics/storefront/services/common/logger"
	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Env, "api-gateway", nil)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting API Gateway...")

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.SecurityHeaders(),
		middleware.CORS(middleware.ParseOrigins(cfg.AllowedOrigins)),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "api-gateway"})
	})
	routes.RegisterAllRoutes(r, routes.Upstreams{
		Storefront: proxy.NewForwarder("storefront", cfg.StorefrontURL, cfg.UpstreamTimeout, log),
		Account:    proxy.NewForwarder("account", cfg.AccountURL, cfg.UpstreamTimeout, log),
		Assistant:  proxy.NewForwarder("assistant", cfg.AssistantURL, cfg.UpstreamTimeout, log),
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("API Gateway listening on port", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	log.Info("API Gateway stopped")
}
