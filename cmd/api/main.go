package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/vulgate-search-api/internal/config"
	"github.com/vulgate-search-api/internal/handlers"
	"github.com/vulgate-search-api/internal/middleware"
	"github.com/vulgate-search-api/internal/repository"
	"github.com/vulgate-search-api/internal/repository/postgres"
	weaviaterepo "github.com/vulgate-search-api/internal/repository/weaviate"
	"github.com/vulgate-search-api/internal/services"
	pkgconfig "github.com/vulgate-search-api/pkg/schema/config"
	"github.com/vulgate-search-api/pkg/schema/db"
	pkgservices "github.com/vulgate-search-api/pkg/schema/services"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := config.GetConfig()
	storeCfg := pkgconfig.GetConfig()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSMiddleware())

	ctx := context.Background()

	// Create the vector search repository for the configured backend.
	// Missing store configuration is fatal: the process must not serve.
	var vectorRepo repository.VerseSearchRepository
	var storeCheck func(ctx context.Context) error
	storeName := cfg.VectorBackend

	switch cfg.VectorBackend {
	case "pgvector":
		log.Println("Using pgvector backend")
		pgDB, err := db.ConnectPostgres(ctx, storeCfg)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		vectorRepo = postgres.NewVerseSearchRepository(pgDB)
		storeCheck = pgDB.PingContext
	default:
		log.Println("Using Weaviate backend")
		storeName = "weaviate"
		client, err := db.NewWeaviateClient(storeCfg)
		if err != nil {
			log.Fatalf("Failed to create Weaviate client: %v", err)
		}
		vectorRepo = weaviaterepo.NewVerseSearchRepository(client, storeCfg.CollectionName)
		storeCheck = func(ctx context.Context) error {
			ready, err := client.Misc().ReadyChecker().Do(ctx)
			if err != nil {
				return err
			}
			if !ready {
				return fmt.Errorf("weaviate reports not ready")
			}
			return nil
		}
	}

	// Create services
	embeddingsSvc, err := pkgservices.NewEmbeddingsService(ctx, storeCfg)
	if err != nil {
		log.Fatalf("Failed to initialize embeddings service: %v", err)
	}

	vectorSearchSvc := services.NewVectorSearchService(vectorRepo, embeddingsSvc, cfg.SearchTimeout, cfg.StoreMaxRetries)

	// Create API group with prefix
	api := e.Group(cfg.APIPrefix)

	// Register handlers
	healthHandler := handlers.NewHealthHandler(storeName, storeCheck)
	healthHandler.RegisterRoutes(api)

	searchHandler := handlers.NewSearchHandler(vectorSearchSvc)
	searchHandler.RegisterRoutes(api)

	// Root banner
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"name":    cfg.APITitle,
			"version": cfg.APIVersion,
			"status":  "running",
		})
	})

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Starting %s v%s on %s", cfg.APITitle, cfg.APIVersion, addr)
		if err := e.Start(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	if err := vectorRepo.Close(); err != nil {
		log.Printf("Error closing vector store: %v", err)
	}

	if err := embeddingsSvc.Close(); err != nil {
		log.Printf("Error closing embeddings service: %v", err)
	}

	log.Println("Server stopped")
}
