package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cataloger/internal/aggregator"
	"cataloger/internal/api/handlers"
	"cataloger/internal/api/middleware"
	"cataloger/internal/broker"
	"cataloger/internal/cache"
	"cataloger/internal/config"
	"cataloger/internal/database"
	"cataloger/internal/logger"
	"cataloger/internal/process"
	"cataloger/internal/publisher"
	"cataloger/internal/repository"
	"cataloger/internal/services/automation"
	"cataloger/internal/services/imghost"
	"cataloger/internal/services/watermark"
	"cataloger/internal/services/woocommerce"
	"cataloger/internal/services/wordpress"
	"cataloger/internal/syncer"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, events *broker.Publisher, responseCache *cache.Cache) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	repo := repository.New(db.DB)

	commerce := woocommerce.NewClient(cfg.WooBaseURL, cfg.WooConsumerKey, cfg.WooConsumerSecret, cfg.WooBrandAttributeID, logger)
	contentSource := wordpress.NewClient(cfg.WordPressBaseURL, logger)
	imageHost := imghost.NewClient(cfg.ImageHostURL, cfg.ImageHostAPIKey, logger)
	watermarker := watermark.NewClient(cfg.WatermarkURL, cfg.WatermarkAPIKey, logger)
	automationEngine := automation.NewClient(cfg.AutomationWebhookURL, logger)

	variantAggregator := aggregator.New(commerce, responseCache, logger)
	productPublisher := publisher.New(repo, commerce, events, logger)
	syncEngine := syncer.NewEngine(contentSource, repo, events, logger)
	processTracker := process.NewTracker(automationEngine, repo, logger)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(repo, productPublisher, logger)
	syncHandler := handlers.NewSyncHandler(syncEngine, repo, logger)
	catalogHandler := handlers.NewCatalogHandler(repo, commerce, variantAggregator, logger)
	processHandler := handlers.NewProcessHandler(processTracker, repo, logger)
	imageHandler := handlers.NewImageHandler(imageHost, watermarker, logger)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Products
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", productHandler.Create)
			products.POST("/:id/confirm", productHandler.Confirm)
		}

		// Synced posts
		posts := v1.Group("/posts")
		{
			posts.GET("", syncHandler.ListPosts)
			posts.POST("/sync", syncHandler.Sync)
		}

		// Catalog taxonomy
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/categories", catalogHandler.ListCategories)
			catalog.POST("/categories/refresh", catalogHandler.RefreshCategories)
			catalog.GET("/brands", catalogHandler.ListBrands)
			catalog.POST("/brands/refresh", catalogHandler.RefreshBrands)
			catalog.GET("/attributes", catalogHandler.ListAttributes)
		}

		// Variant aggregation
		variants := v1.Group("/variants")
		{
			variants.POST("/suggested", catalogHandler.SuggestedVariants)
			variants.POST("/grouped", catalogHandler.GroupedVariants)
		}

		// Workflow executions
		processes := v1.Group("/processes")
		{
			processes.POST("", processHandler.Trigger)
			processes.GET("", processHandler.List)
		}

		// Images
		v1.POST("/images", imageHandler.Upload)
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})

	s.server = &http.Server{
		Addr:        addr,
		Handler:     corsHandler.Handler(s.router),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// GetRouter returns the Gin router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
