package main

import (
	"context"
	"log"
	"time"

	"github.com/ekolek/ekolek/internal/pkg/config"
	"github.com/ekolek/ekolek/internal/pkg/constants"
	"github.com/ekolek/ekolek/internal/pkg/database"
	"github.com/ekolek/ekolek/internal/pkg/health"
	"github.com/ekolek/ekolek/internal/pkg/logger"
	"github.com/ekolek/ekolek/internal/pkg/middleware"
	natspkg "github.com/ekolek/ekolek/internal/pkg/nats"
	nrpkg "github.com/ekolek/ekolek/internal/pkg/newrelic"
	"github.com/ekolek/ekolek/internal/pkg/server"
	"github.com/ekolek/ekolek/services/auth/gateway"
	"github.com/ekolek/ekolek/services/auth/handler"
	authhttp "github.com/ekolek/ekolek/services/auth/handler/http"
	"github.com/ekolek/ekolek/services/auth/repository"
	"github.com/ekolek/ekolek/services/auth/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	appName := "ekolek-auth"
	configPath := config.GetEnv("CONFIG_PATH", "config/auth.env")
	configs := config.InitConfig(configPath)

	// Initialize New Relic and the Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	shutdownMgr := server.NewShutdownManager(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	shutdownMgr.Register(func(ctx context.Context) error {
		return postgresClient.Close()
	})

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	shutdownMgr.Register(func(ctx context.Context) error {
		return redisClient.Close()
	})

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	shutdownMgr.Register(func(ctx context.Context) error {
		natsClient.Close()
		return nil
	})

	// Initialize repositories
	challengeRepo := repository.NewChallengeRepo(configs, redisClient)
	sessionRepo := repository.NewSessionRepo(configs, redisClient)
	accountRepo := repository.NewAccountRepo(postgresClient.GetDB())

	// Initialize gateway
	authGW := gateway.NewAuthGW(natsClient)

	// Initialize usecase
	authUC := usecase.NewAuthUC(challengeRepo, sessionRepo, accountRepo, authGW, configs)

	// Initialize handlers
	otpHandler := authhttp.NewOTPHandler(authUC, configs)
	sessionHandler := authhttp.NewSessionHandler(authUC, configs)
	h := handler.NewHandler(otpHandler, sessionHandler, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName)

	// Register service routes; OTP endpoints get a per-IP limiter on
	// top of the engine's per-contact cooldown
	otpLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: redisClient.GetClient(),
		Key:         constants.KeyRateLimit,
		Limit:       10,
		Period:      time.Minute,
	})
	h.RegisterRoutes(e, otpLimiter)

	// Start server with graceful shutdown
	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	shutdownMgr.Shutdown(ctx)
}
