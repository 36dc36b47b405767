package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pantrychef/internal/api"
	"pantrychef/internal/config"
	"pantrychef/internal/logging"
	"pantrychef/internal/platform/gemini"
	"pantrychef/internal/platform/vision"
	"pantrychef/internal/recipe"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	if err := logging.Init(cfg.LogLevel); err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}
	defer logging.Sync()

	var store recipe.Store
	switch cfg.Store.Driver {
	case "postgres":
		store, err = recipe.NewPostgresStore(cfg.Store.DSN)
	default:
		store, err = recipe.NewFileStore(cfg.Store.Path)
	}
	if err != nil {
		panic(fmt.Errorf("error creating recipe store: %w", err))
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		panic(fmt.Errorf("error creating gemini client: %w", err))
	}

	var detector api.Detector
	if cfg.Detector.Enabled {
		detector = vision.NewClient(cfg.Detector.BaseURL, cfg.Detector.Model, cfg.Detector.Confidence, cfg.Detector.Timeout)
	}

	var cache api.DetectionCache
	if cfg.Cache.Enabled {
		visionCache, err := vision.NewCache(cfg.Cache.Addr, cfg.Cache.TTL)
		if err != nil {
			panic(fmt.Errorf("error connecting detection cache: %w", err))
		}
		defer visionCache.Close()
		cache = visionCache
	}

	service := recipe.NewService(store, geminiClient)
	handler := api.NewHandler(service, detector, cache, cfg.Gemini.Timeout)

	r := gin.Default()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/search", handler.Search)
	r.GET("/recipes", handler.GetRecipes)
	r.GET("/recipes/:id", handler.GetRecipe)
	r.GET("/health", handler.Health)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	zap.L().Info("starting server",
		zap.Int("port", cfg.Server.Port),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("detector_enabled", cfg.Detector.Enabled),
	)
	if err := srv.ListenAndServe(); err != nil {
		panic(fmt.Errorf("server exited: %w", err))
	}
}
