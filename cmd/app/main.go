package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"yap-backend/docs"
	"yap-backend/internal/common/cache"
	"yap-backend/internal/common/config"
	applogger "yap-backend/internal/common/logger"
	"yap-backend/internal/common/metrics"
	"yap-backend/internal/common/middleware"
	lessonHTTP "yap-backend/internal/features/lesson/delivery/http"
	lessonRepo "yap-backend/internal/features/lesson/repository/postgres"
	lessonService "yap-backend/internal/features/lesson/service"
	rewardHTTP "yap-backend/internal/features/reward/delivery/http"
	rewardRedis "yap-backend/internal/features/reward/repository/redis"
	rewardService "yap-backend/internal/features/reward/service"
	rewardWorker "yap-backend/internal/features/reward/worker"
	userHTTP "yap-backend/internal/features/user/delivery/http"
	userRepo "yap-backend/internal/features/user/repository/postgres"
	userService "yap-backend/internal/features/user/service"
	"yap-backend/internal/platform/chain"
	"yap-backend/internal/platform/postgres"
	"yap-backend/internal/platform/redis"
)

// @title           YAP API
// @version         1.0
// @description     Lesson completion and reward token API for the YAP language learning app.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3001
// @BasePath  /api/v1

// @tag.name lessons
// @tag.description Lesson completion, history, stats and streaks

// @tag.name users
// @tag.description Learner profiles

// @tag.name auth
// @tag.description Email and password signup and login

// @tag.name rewards
// @tag.description Reward token balances

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	applogger.Init("yap-backend", cfg.Debug)

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting YAP backend",
		zap.String("version", "1.0.0"),
		zap.Bool("debug", cfg.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresClient, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer postgresClient.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, postgresClient.GetDB().DB, "up"); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	redisClient, err := redis.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Caches and claims stay nil without Redis.
	var (
		cacheService *cache.CacheService
		claims       lessonService.ClaimStore
	)
	if redisClient != nil {
		cacheService = cache.NewCacheService(redisClient.Client)
		claims = rewardRedis.NewClaimStore(redisClient.Client, cfg.Reward.ClaimTTL)
	}

	tokenClient, err := chain.Dial(ctx, chain.Config{
		RPCURL:       cfg.Chain.RPCURL,
		TokenAddress: cfg.Chain.TokenAddress,
		PrivateKey:   cfg.Chain.PrivateKey,
		ChainID:      cfg.Chain.ChainID,
	})
	switch {
	case errors.Is(err, chain.ErrNotConfigured):
		logger.Warn("Token contract not configured, rewards will be skipped")
	case err != nil:
		logger.Error("Failed to initialize token client, rewards will be skipped", zap.Error(err))
	}
	if tokenClient != nil {
		defer tokenClient.Close()
	}

	issuer := rewardService.NewUnconfiguredIssuer(logger)
	var balances rewardService.BalanceReader
	if tokenClient != nil {
		balances = tokenClient
		if tokenClient.CanTransfer() {
			issuer = rewardService.NewIssuer(tokenClient, cfg.Reward.Timeout, logger)
		} else {
			logger.Warn("PRIVATE_KEY not set, token client is read-only")
		}
	}

	userRepository := userRepo.NewPostgresRepository(postgresClient.GetDB())
	lessonRepository := lessonRepo.NewPostgresRepository(postgresClient.GetDB())

	userSvc := userService.NewUserService(userRepository, cacheService, cfg.Lessons.ProfileCacheTTL, logger)
	lessonSvc := lessonService.NewLessonService(
		lessonRepository,
		userSvc,
		issuer,
		claims,
		cacheService,
		lessonService.Config{
			RewardAmount:     cfg.Reward.Amount,
			StreakWindowDays: cfg.Lessons.StreakWindowDays,
			StatsTTL:         cfg.Lessons.StatsCacheTTL,
		},
		logger,
	)
	balanceSvc := rewardService.NewBalanceService(balances)

	var retryWorker *rewardWorker.RetryWorker
	if issuer.Configured() && cfg.RetryEnabled() {
		retryWorker = rewardWorker.NewRetryWorker(lessonRepository, issuer, cfg.Reward.Amount, cfg.Reward.RetryBatch, logger)
		if err := retryWorker.Start(cfg.Reward.RetrySchedule); err != nil {
			logger.Fatal("Failed to start reward retry worker", zap.Error(err))
		}
	} else if issuer.Configured() {
		logger.Info("Reward retry worker disabled")
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.Origins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger)
	limiter.StartCleanup(time.Minute, ctx.Done())

	setupRoutes(router, routes{
		users:   userHTTP.NewUserHandler(userSvc, logger),
		lessons: lessonHTTP.NewLessonHandler(lessonSvc, logger),
		rewards: rewardHTTP.NewRewardHandler(balanceSvc, logger),
		guard:   limiter.Handler(),
	}, postgresClient, redisClient)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if retryWorker != nil {
		retryWorker.Stop(shutdownCtx)
	}

	logger.Info("Server exited")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type routes struct {
	users   *userHTTP.UserHandler
	lessons *lessonHTTP.LessonHandler
	rewards *rewardHTTP.RewardHandler
	guard   gin.HandlerFunc
}

func setupRoutes(router *gin.Engine, r routes, postgresClient *postgres.Client, redisClient *redis.Client) {
	v1 := router.Group("/api/v1")
	r.users.RegisterRoutes(v1, r.guard)
	r.lessons.RegisterRoutes(v1, r.guard)
	r.rewards.RegisterRoutes(v1)

	legacy := router.Group("/api")
	r.users.RegisterLegacyRoutes(legacy, r.guard)
	r.lessons.RegisterLegacyRoutes(legacy, r.guard)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "yap-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := postgresClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "postgres unavailable",
				"details": err.Error(),
			})
			return
		}

		if redisClient != nil {
			if err := redisClient.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "yap-backend",
		})
	})
}
