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
	"github.com/corexathletics/storefront/services/common/auth"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/common/logger"
	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/corexathletics/storefront/services/storefront-service/controllers"
	"github.com/corexathletics/storefront/services/storefront-service/database"
	shopper "github.com/corexathletics/storefront/services/storefront-service/middleware"
	"github.com/corexathletics/storefront/services/storefront-service/repository"
	"github.com/corexathletics/storefront/services/storefront-service/routes"
	"github.com/corexathletics/storefront/services/storefront-service/services"
	"github.com/corexathletics/storefront/services/storefront-service/validation"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const serviceName = "storefront-service"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	ctx := context.Background()

	// --- AWS setup (non-fatal: the storefront runs without AWS locally) ---
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

	var (
		metrics   *awspkg.MetricsClient
		publisher awspkg.EventPublisher
	)
	if awsErr != nil {
		log.Warn("AWS config unavailable, metrics and order events disabled", zap.Error(awsErr))
	} else {
		metrics = awspkg.NewMetricsClient(awsCfg, "", cfg.MetricsEnabled)
		publisher = awspkg.NewSNSPublisher(awsCfg)
	}
	if cfg.OrderTopicARN == "" {
		log.Warn("ORDER_SNS_TOPIC_ARN not set, order.placed events will not be published")
	}

	if err := validation.Register(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	// --- Storage ---
	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	var (
		source      repository.CatalogSource = repository.StaticCatalogSource{}
		mongoClient *mongo.Client
	)
	if cfg.CatalogSource == CatalogSourceMongo {
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURL, cfg.MongoDB)
		if err != nil {
			log.Fatal("MongoDB connection failed", zap.Error(err))
		}
		mongoClient = client
		source = repository.NewMongoCatalogSource(db.Collection("products"))
	}
	products, err := services.LoadCatalog(ctx, source, log)
	if err != nil {
		log.Fatal("Catalog load failed", zap.Error(err))
	}
	// The snapshot is immutable, so Mongo is not needed after startup.
	if mongoClient != nil {
		if err := database.DisconnectMongo(mongoClient); err != nil {
			log.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}

	// --- Dependency injection ---
	cartService := services.NewCartService(
		repository.NewRedisCartRepository(redisClient, cfg.CartTTL), products, metrics, log)
	checkoutService := services.NewCheckoutService(services.CheckoutDeps{
		Sessions:   repository.NewRedisSessionRepository(redisClient, cfg.SessionTTL),
		Cart:       cartService,
		Pricing:    cfg.Pricing,
		Publisher:  publisher,
		OrderTopic: cfg.OrderTopicARN,
		Metrics:    metrics,
		Logger:     log,
	})

	// --- HTTP router ---
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(metrics, serviceName),
		middleware.SecurityHeaders(),
		middleware.CORS(middleware.ParseOrigins(cfg.AllowedOrigins)),
		middleware.Timeout(30*time.Second),
		apperrors.ErrorMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})

	routes.RegisterCatalogRoutes(r, controllers.NewCatalogController(services.NewCatalogService(products)))

	shop := r.Group("")
	if cfg.JWTSecret != "" {
		tokens, err := auth.NewTokenManager(cfg.JWTSecret, 0, 0)
		if err != nil {
			log.Fatal("Token manager init failed", zap.Error(err))
		}
		shop.Use(middleware.Authenticate(tokens))
	} else {
		log.Warn("JWT_SECRET not set, every shopper is treated as a guest")
	}
	shop.Use(shopper.Shopper(cfg.CookieSecure))
	routes.RegisterCartRoutes(shop, controllers.NewCartController(cartService))
	routes.RegisterCheckoutRoutes(shop, controllers.NewCheckoutController(checkoutService))

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Storefront Service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	log.Info("Storefront Service stopped")
}
