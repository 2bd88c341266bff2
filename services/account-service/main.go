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
	ddb "github.com/corexathletics/storefront/pkg/dynamodb"
	"github.com/corexathletics/storefront/services/account-service/controllers"
	"github.com/corexathletics/storefront/services/account-service/database"
	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/repository"
	"github.com/corexathletics/storefront/services/account-service/routes"
	"github.com/corexathletics/storefront/services/account-service/services"
	"github.com/corexathletics/storefront/services/common/auth"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/common/logger"
	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "account-service"

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

	// --- Database ---
	db, err := database.Connect(cfg.Postgres)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	if err := models.Migrate(db); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	// --- AWS setup ---
	var (
		metrics   *awspkg.MetricsClient
		publisher awspkg.EventPublisher
		presigner awspkg.UploadPresigner
	)
	if awsErr != nil {
		log.Warn("AWS config unavailable, metrics, events and avatar uploads disabled", zap.Error(awsErr))
	} else {
		metrics = awspkg.NewMetricsClient(awsCfg, "", cfg.MetricsEnabled)
		publisher = awspkg.NewSNSPublisher(awsCfg)
		if cfg.AvatarBucket != "" {
			presigner = awspkg.NewS3Presigner(awsCfg)
		}
	}

	var wishlists repository.WishlistRepository = repository.NewGormWishlistRepository(db)
	if cfg.WishlistStore == WishlistStoreDynamo {
		if awsErr != nil {
			log.Fatal("WISHLIST_STORE=dynamodb needs AWS config", zap.Error(awsErr))
		}
		client := ddb.NewClientFromConfig(awsCfg)
		pk, sk := repository.WishlistKeys()
		if err := ddb.EnsureCompositeKeyTable(ctx, client, cfg.WishlistTable, pk, sk); err != nil {
			log.Fatal("Wishlist table setup failed", zap.Error(err))
		}
		wishlists = repository.NewDynamoWishlistRepository(client, cfg.WishlistTable)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatal("Token manager init failed", zap.Error(err))
	}

	// --- Dependency injection ---
	authService := services.NewAuthService(services.AuthDeps{
		Users:     repository.NewGormUserRepository(db),
		Tokens:    tokens,
		Publisher: publisher,
		UserTopic: cfg.UserTopicARN,
		Metrics:   metrics,
		Logger:    log,
	})
	profileService := services.NewProfileService(repository.NewGormProfileRepository(db), presigner, cfg.AvatarBucket, log)
	wishlistService := services.NewWishlistService(wishlists, catalog.Default(), log)

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
		middleware.Authenticate(tokens),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})

	routes.RegisterAuthRoutes(r, controllers.NewAuthController(authService, cfg.CookieSecure),
		routes.AuthLimits{PerMinute: cfg.AuthRatePerMinute, Burst: cfg.AuthRateBurst})
	routes.RegisterProfileRoutes(r, controllers.NewProfileController(profileService))
	routes.RegisterWishlistRoutes(r, controllers.NewWishlistController(wishlistService))

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Account Service started", zap.String("port", cfg.Port), zap.String("wishlist_store", cfg.WishlistStore))
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
	if err := database.Close(db); err != nil {
		log.Error("Database close error", zap.Error(err))
	}
	log.Info("Account Service stopped")
}
