package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hunterlab/monster-advisor/internal/ai"
	"github.com/hunterlab/monster-advisor/internal/auth"
	"github.com/hunterlab/monster-advisor/internal/config"
	"github.com/hunterlab/monster-advisor/internal/database"
	"github.com/hunterlab/monster-advisor/internal/events"
	"github.com/hunterlab/monster-advisor/internal/handler"
	"github.com/hunterlab/monster-advisor/internal/journal"
	"github.com/hunterlab/monster-advisor/internal/middleware"
	"github.com/hunterlab/monster-advisor/internal/repository"
	"github.com/hunterlab/monster-advisor/internal/service"
	"github.com/hunterlab/monster-advisor/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger.Init(!cfg.IsProduction())
	defer logger.Sync()

	database.Connect(cfg)
	defer database.Close()
	database.Migrate()

	jrnl, err := journal.Open(cfg.JournalPath)
	if err != nil {
		logger.Log.Fatal("Failed to open recommendation journal",
			zap.String("path", cfg.JournalPath),
			zap.Error(err),
		)
	}
	defer jrnl.Close()

	// Redis backs both the event publisher and the login rate limiter.
	// The server runs without it, minus those two features.
	var publisher events.Publisher
	var rateLimiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		redisPublisher, err := events.NewRedisPublisher(cfg.RedisURL)
		if err != nil {
			logger.Log.Warn("Redis unavailable, events and rate limiting disabled",
				zap.Error(err),
			)
		} else {
			publisher = redisPublisher
			defer redisPublisher.Close()
			rateLimiter = middleware.NewRateLimiter(redisPublisher.Client(), middleware.RateLimiterConfig{
				MaxRequests: cfg.RateLimitMaxRequests,
				Window:      cfg.RateLimitWindow,
			})
		}
	}

	advisor, err := ai.NewGeminiAdvisor(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Log.Fatal("Failed to initialize Gemini advisor", zap.Error(err))
	}

	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID)

	userRepo := repository.NewUserRepository(database.DB)
	monsterRepo := repository.NewMonsterRepository(database.DB)
	weaponRepo := repository.NewWeaponRepository(database.DB)
	recRepo := repository.NewRecommendationRepository(database.DB)

	authService := service.NewAuthService(userRepo, verifier, cfg.JWTSecret, cfg.JWTExpiry)
	recService := service.NewRecommendationService(recRepo, weaponRepo, monsterRepo, userRepo, advisor, jrnl, publisher)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(monsterRepo, weaponRepo)
	recHandler := handler.NewRecommendationHandler(recService)

	router := setupRouter(cfg, authHandler, catalogHandler, recHandler, userRepo, rateLimiter)

	logger.Log.Info("Server starting",
		zap.String("port", cfg.ServerPort),
		zap.String("environment", cfg.Environment),
	)

	if err := router.Run(cfg.ServerPort); err != nil {
		logger.Log.Fatal("Server failed", zap.Error(err))
	}
}

func setupRouter(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	recHandler *handler.RecommendationHandler,
	userRepo *repository.UserRepository,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HSTS(cfg.IsProduction()))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Monster Hunter Recommendation API with Gemini AI")
	})

	login := router.Group("/")
	if rateLimiter != nil {
		login.Use(rateLimiter.Middleware())
	}
	login.POST("/login", authHandler.Login)
	login.POST("/google-login", authHandler.GoogleLogin)

	router.GET("/monsters", catalogHandler.Monsters)
	router.GET("/monsters/:monsterId", catalogHandler.MonsterByID)
	router.GET("/monsters/:monsterId/analyze", recHandler.Analyze)
	router.GET("/weapons", catalogHandler.Weapons)
	router.GET("/weapons/:weaponId", catalogHandler.WeaponByID)
	router.GET("/recommendations", recHandler.List)
	router.POST("/recommendations/generate", recHandler.Generate)
	router.DELETE("/recommendations/:id", recHandler.Delete)

	// Best-weapon persists on behalf of the caller, so it alone needs a
	// verified identity.
	router.GET("/monsters/:monsterId/best-weapon",
		middleware.Authenticate(userRepo, cfg.JWTSecret),
		recHandler.BestWeapon,
	)

	return router
}
