package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/spotme/spotme-api/adapters/event"
	httpAdapter "github.com/spotme/spotme-api/adapters/http"
	"github.com/spotme/spotme-api/adapters/media_storage"
	"github.com/spotme/spotme-api/adapters/persistence"
	"github.com/spotme/spotme-api/internal/application/editor"
	authUC "github.com/spotme/spotme-api/internal/application/usecase/auth"
	portfolioUC "github.com/spotme/spotme-api/internal/application/usecase/portfolio"
	"github.com/spotme/spotme-api/internal/config"
	"github.com/spotme/spotme-api/pkg/auth"
	"github.com/spotme/spotme-api/pkg/logger"
	"github.com/spotme/spotme-api/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting SpotMe API server...")

	tracerProvider, err := tracing.NewTracerProvider(cfg, appLogger, "spotme-api")
	if err != nil {
		appLogger.Warn("Tracing disabled", zap.Error(err))
	} else {
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				appLogger.Error("Failed to shut down tracer provider", err)
			}
		}()
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect to Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect to Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka producer", err)
	}
	defer kafkaClient.Close()

	// Repositories and services
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool)
	documentCache := persistence.NewRedisDocumentCache(redisClient)
	tokenDenylist := persistence.NewRedisTokenDenylist(redisClient)
	editorStore := editor.NewStore()

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use cases
	signUpUC := authUC.NewSignUpUseCase(userRepo, kafkaClient, appLogger)
	loginUC := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	confirmUC := authUC.NewConfirmEmailUseCase(userRepo)
	logoutUC := authUC.NewLogoutUseCase(tokenDenylist)
	resetUC := authUC.NewResetPasswordUseCase(userRepo, kafkaClient, cfg.Auth.ResetLifespan, appLogger)

	loadUC := portfolioUC.NewLoadPortfolioUseCase(portfolioRepo, userRepo, editorStore)
	saveDraftUC := portfolioUC.NewSaveDraftUseCase(portfolioRepo, editorStore)
	publishUC := portfolioUC.NewPublishUseCase(portfolioRepo, userRepo, editorStore, kafkaClient, cfg.App.PublicBaseURL, appLogger)
	deleteUC := portfolioUC.NewDeletePortfolioUseCase(portfolioRepo, editorStore, kafkaClient, appLogger)
	getPublishedUC := portfolioUC.NewGetPublishedUseCase(portfolioRepo, userRepo, documentCache, appLogger)
	listPublishedUC := portfolioUC.NewListPublishedUseCase(portfolioRepo)

	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		AuthHandler:      httpAdapter.NewAuthHandler(signUpUC, loginUC, confirmUC, logoutUC, resetUC),
		EditorHandler:    httpAdapter.NewEditorHandler(loadUC, editorStore, uploader, appLogger),
		PortfolioHandler: httpAdapter.NewPortfolioHandler(saveDraftUC, publishUC, deleteUC),
		ViewerHandler:    httpAdapter.NewViewerHandler(getPublishedUC, listPublishedUC, appLogger),
		AuthMiddleware:   httpAdapter.AuthMiddleware(jwtSvc, tokenDenylist, appLogger),
		ErrorMiddleware:  httpAdapter.ErrorMiddleware(appLogger),
		CORSOrigins:      cfg.App.CORSOrigins,
	})

	appLogger.Info("Server listening", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
