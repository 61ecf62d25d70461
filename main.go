package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	apirest "github.com/sidequest-app/sidequest/server/api/rest"
	"github.com/sidequest-app/sidequest/server/audit"
	"github.com/sidequest-app/sidequest/server/cache"
	"github.com/sidequest-app/sidequest/server/config"
	dbadapter "github.com/sidequest-app/sidequest/server/db"
	"github.com/sidequest-app/sidequest/server/generate"
	"github.com/sidequest-app/sidequest/server/llm"
	mw "github.com/sidequest-app/sidequest/server/middleware"
	"github.com/sidequest-app/sidequest/server/model"
	"github.com/sidequest-app/sidequest/server/quest"
	"github.com/sidequest-app/sidequest/server/scheduler"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	if cfg.AI.APIKey == "" {
		logger.Warn("ai.api_key is not set; all generation uses the local catalog engine")
	}

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("DB initialized")

	// ---- Audit ----
	auditSvc := audit.New(db, logger)
	defer auditSvc.Stop(nil)

	// ---- Cache ----
	c, err := cache.New(cache.Config{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		LocalGCInterval: cfg.Cache.LocalGCInterval,
	})
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	logger.Info("Cache initialized")

	// ---- Generation ----
	gateway := generate.NewGateway(llm.Config{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		Timeout:     cfg.AI.Timeout,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	}, logger)

	// ---- Quest state ----
	repo := quest.NewRepository(quest.NewStore(db), auditSvc, logger)

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()
	sched.AddTicker("quest_state_eviction", cfg.Sync.EvictInterval, func() {
		if n := repo.EvictIdle(cfg.Sync.IdleEviction); n > 0 {
			logger.Info("evicted idle quest state", zap.Int("owners", n))
		}
	})

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))

	// Health check
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	// ---- REST API routes ----
	authH := apirest.NewAuthHandler(db, c, cfg.Security)
	profileH := apirest.NewProfileHandler(db)
	questH := apirest.NewQuestHandler(db, repo, gateway, c, cfg.Sync.GenerateCooldown, logger)

	api := r.Group("/api")
	{
		authG := api.Group("/auth")
		authG.POST("/login", authH.Login)
		authG.POST("/logout", mw.Auth(cfg.Security, c), authH.Logout)
		authG.POST("/refresh", mw.Auth(cfg.Security, c), authH.Refresh)

		profileG := api.Group("/profile")
		profileG.Use(mw.Auth(cfg.Security, c))
		profileG.GET("", profileH.Get)
		profileG.PUT("", profileH.Put)

		questsG := api.Group("/quests")
		questsG.Use(mw.Auth(cfg.Security, c))
		questsG.GET("", questH.List)
		questsG.POST("", questH.Create)
		questsG.POST("/generate", questH.Generate)
		questsG.POST("/refresh", questH.Refresh)
		questsG.GET("/:id", questH.Get)
		questsG.DELETE("/:id", questH.Delete)
		questsG.POST("/:id/start", questH.Start)
		questsG.POST("/:id/complete", questH.Complete)
		questsG.POST("/:id/archive", questH.Archive)
		questsG.PATCH("/:id/data", questH.PatchData)
		questsG.POST("/:id/steps/:index/toggle", questH.ToggleStep)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
