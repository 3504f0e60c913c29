// setup_collection.go
//
// This script creates the Weaviate collection that holds the verse corpus.
// The collection carries four attributes (text, book, chapter, verse) and
// stores vectors supplied at ingest time (no server-side vectorizer).
//
// Environment variables:
//   WEAVIATE_URL      - Weaviate endpoint
//   WEAVIATE_API_KEY  - API credential
//   COLLECTION_NAME   - Target collection (default: Vulgate)
//
// Usage:
//   go run ./scripts/setup              # create, fail if it exists
//   go run ./scripts/setup -recreate    # drop and rebuild (DELETES ALL DATA)

package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	pkgconfig "github.com/vulgate-search-api/pkg/schema/config"
	"github.com/vulgate-search-api/pkg/schema/db"
	wvmodels "github.com/weaviate/weaviate/entities/models"
)

func main() {
	recreate := flag.Bool("recreate", false, "Drop the collection first if it exists (DESTRUCTIVE)")
	flag.Parse()

	godotenv.Load()
	cfg := pkgconfig.GetConfig()

	client, err := db.NewWeaviateClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create Weaviate client: %v", err)
	}

	ctx := context.Background()

	exists, err := client.Schema().ClassExistenceChecker().WithClassName(cfg.CollectionName).Do(ctx)
	if err != nil {
		log.Fatalf("Failed to check collection existence: %v", err)
	}

	if exists {
		if !*recreate {
			log.Fatalf("Collection %q already exists. Pass -recreate to drop and rebuild it.", cfg.CollectionName)
		}
		log.Printf("Deleting existing collection %q (all data will be lost)", cfg.CollectionName)
		if err := client.Schema().ClassDeleter().WithClassName(cfg.CollectionName).Do(ctx); err != nil {
			log.Fatalf("Failed to delete collection: %v", err)
		}
	}

	class := &wvmodels.Class{
		Class:      cfg.CollectionName,
		Vectorizer: "none", // vectors are supplied at ingest time
		Properties: []*wvmodels.Property{
			{Name: "text", DataType: []string{"text"}},
			{Name: "book", DataType: []string{"text"}},
			{Name: "chapter", DataType: []string{"int"}},
			{Name: "verse", DataType: []string{"int"}},
		},
	}

	if err := client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		log.Fatalf("Failed to create collection: %v", err)
	}

	log.Printf("Created collection %q", cfg.CollectionName)
}
