package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/portfolio-builder/adapters/cache"
	"github.com/khoahotran/portfolio-builder/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-builder/adapters/http"
	"github.com/khoahotran/portfolio-builder/adapters/media_storage"
	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/application/service"
	authUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/auth"
	mediaUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/media"
	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/internal/render"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
	"github.com/khoahotran/portfolio-builder/pkg/tracing"
)

const serviceName = "portfolio-builder-api"

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", err)
	}
	appLogger.Info("Start Portfolio Builder API Server...", zap.String("env", cfg.App.Env))

	// Tracing
	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, serviceName)
		if err != nil {
			appLogger.Fatal("Cannot init tracer", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", err)
			}
		}()
	}

	// Database
	if cfg.DB.AutoMigrate {
		if err := persistence.RunMigrations(cfg.DB.DSN, appLogger); err != nil {
			appLogger.Fatal("Cannot run migrations", err)
		}
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Cache
	var pageCache service.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		pageCache = cache.NewRedisCache(redisClient)
	} else {
		appLogger.Warn("Redis not configured, using in-process page cache")
		pageCache = cache.NewMemoryCache(cfg.Redis.CacheTTL, 2*cfg.Redis.CacheTTL)
	}

	// Events
	var events service.EventPublisher = service.NopEventPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		events = kafkaClient
	} else {
		appLogger.Warn("Kafka brokers not configured, portfolio events are disabled")
	}

	// Media storage
	var uploader service.Uploader
	if cfg.Cloudinary.CloudName != "" {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
	} else {
		appLogger.Warn("Cloudinary not configured, profile picture upload is disabled")
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	renderer, err := render.New()
	if err != nil {
		appLogger.Fatal("Cannot parse page templates", err)
	}

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	publishUseCase := portfolioUC.NewPublishPortfolioUseCase(portfolioRepo, jwtSvc, pageCache, events, appLogger)
	getPublicUseCase := portfolioUC.NewGetPublicPortfolioUseCase(portfolioRepo, pageCache, cfg.Redis.CacheTTL, appLogger)
	feedUseCase := portfolioUC.NewFeedUseCase(portfolioRepo, cfg.App.BaseURL, appLogger)
	uploadUseCase := mediaUC.NewUploadProfilePictureUseCase(uploader, appLogger)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Logger:           appLogger,
		JWTService:       jwtSvc,
		AuthHandler:      httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, appLogger),
		PortfolioHandler: httpAdapter.NewPortfolioHandler(publishUseCase, getPublicUseCase, uploadUseCase),
		PageHandler:      httpAdapter.NewPageHandler(getPublicUseCase, renderer, cfg.App.BaseURL),
		FeedHandler:      httpAdapter.NewFeedHandler(feedUseCase, appLogger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           httpAdapter.WithCORS(router, cfg.App.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", err)
		return
	}
	appLogger.Info("Server exited")
}
