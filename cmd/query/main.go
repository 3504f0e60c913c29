// Command query searches the Vulgate collection by semantic similarity from
// the terminal, mirroring the interactive front ends with an explicit
// similarity threshold.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"github.com/vulgate-search-api/internal/books"
	"github.com/vulgate-search-api/internal/config"
	"github.com/vulgate-search-api/internal/models"
	weaviaterepo "github.com/vulgate-search-api/internal/repository/weaviate"
	"github.com/vulgate-search-api/internal/services"
	pkgconfig "github.com/vulgate-search-api/pkg/schema/config"
	"github.com/vulgate-search-api/pkg/schema/db"
	pkgservices "github.com/vulgate-search-api/pkg/schema/services"
)

func main() {
	app := &cli.App{
		Name:      "query",
		Usage:     "Query the Vulgate collection by semantic similarity",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "book",
				Usage: "Book abbreviation (e.g., 'Gn') or full name (e.g., 'Genesis')",
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Similarity threshold (strict distance cutoff)",
				Value: 0.4,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of results to return",
				Value: 5,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return cli.Exit("Error: a query argument is required.", 1)
	}

	_ = godotenv.Load()
	storeCfg := pkgconfig.GetConfig()
	if err := storeCfg.ValidateWeaviate(); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v. Set it in your environment or .env file.", err), 1)
	}

	var bookCodes []string
	if sel := c.String("book"); sel != "" {
		code, ok := books.Resolve(sel)
		if !ok {
			return cli.Exit(fmt.Sprintf("Unknown book: %s. Use abbreviation (e.g., 'Gn') or full name (e.g., 'Genesis').", sel), 1)
		}
		bookCodes = []string{code}
	}

	client, err := db.NewWeaviateClient(storeCfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	repo := weaviaterepo.NewVerseSearchRepository(client, storeCfg.CollectionName)
	defer repo.Close()

	embeddingsSvc, err := pkgservices.NewEmbeddingsService(c.Context, storeCfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	defer embeddingsSvc.Close()

	cfg := config.GetConfig()
	searchSvc := services.NewVectorSearchService(repo, embeddingsSvc, cfg.SearchTimeout, cfg.StoreMaxRetries)

	threshold := c.Float64("threshold")
	hits, err := searchSvc.Search(c.Context, models.SearchRequest{
		Query:     query,
		Books:     bookCodes,
		Limit:     c.Int("limit"),
		Threshold: &threshold,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	if len(hits) == 0 {
		fmt.Println("No results found. Try adjusting the similarity threshold or search query.")
		return nil
	}

	for _, hit := range hits {
		fmt.Printf("%s %d:%d | %s\n", hit.Book, hit.Chapter, hit.Verse, hit.Text)
		fmt.Printf("  Similarity: %.2f\n\n", hit.Similarity)
	}
	return nil
}
