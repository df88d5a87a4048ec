package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"feelre/internal/catalog"
	"feelre/internal/config"
	"feelre/internal/handler"
	"feelre/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("FEELRE Gift Agent")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize the catalog provider
	var provider catalog.Provider
	var itemStore catalog.ItemStore
	var pgProvider *catalog.PostgresProvider

	switch cfg.Catalog.Provider {
	case "postgres":
		pgProvider, err = catalog.NewPostgresProvider(
			cfg.Catalog.DSN,
			cfg.Catalog.MaxConnections,
			cfg.Catalog.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pgProvider.Close()
		provider = pgProvider
		itemStore = pgProvider
		log.Println("✅ Connected to PostgreSQL catalog")
	case "memory":
		memProvider := catalog.NewMemoryProvider(nil)
		provider = memProvider
		itemStore = memProvider
		log.Println("✅ Using in-memory sample catalog")
	default:
		log.Fatalf("Unknown catalog provider: %s", cfg.Catalog.Provider)
	}

	// Initialize OpenAI client
	var extractor service.SignalExtractor
	if cfg.OpenAI.Enabled {
		openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
		extractor = openaiClient
		log.Printf("✅ OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("   - Embedding model: %s", cfg.OpenAI.EmbeddingModel)
		log.Printf("   - Chat Temperature: %.2f", cfg.OpenAI.ChatTemperature)
		log.Printf("   - Chat MaxTokens: %d", cfg.OpenAI.ChatMaxTokens)
	} else {
		log.Println("⚠️  OpenAI is disabled - intent extraction runs on heuristics only")
		log.Println("   Set OPENAI_API_KEY environment variable to enable semantic extraction")
	}

	// Initialize services
	var turnLog catalog.TurnLogger
	if pgProvider != nil {
		turnLog = pgProvider
	}
	agentService := service.NewAgentService(cfg.Agent, extractor, provider, turnLog)

	log.Println("✅ Services initialized")
	log.Printf("   - Dialog policy: %s", cfg.Agent.DialogPolicy)
	log.Printf("   - Result count: %d (category cap %d)", cfg.Agent.ResultCount, cfg.Agent.CategoryCap)

	// Initialize handlers
	messageHandler := handler.NewMessageHandler(agentService)
	itemHandler := handler.NewItemHandler(itemStore)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "feelre-gift-agent",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
			"catalog":    provider.Name(),
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/message", messageHandler.Message)
		apiV1.GET("/items/:id", itemHandler.GetItem)

		// Embedding updates need a persistent store
		if pgProvider != nil {
			embeddingHandler := handler.NewEmbeddingHandler(pgProvider, cfg.OpenAI.EmbeddingDimensions)
			apiV1.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
		}
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API root: http://localhost:%d/api/v1", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
