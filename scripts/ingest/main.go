// ingest_corpus.go
//
// This script bulk-loads the verse corpus into the Weaviate collection:
// read the corpus CSV, embed every verse as a document, write a checkpoint
// file with the embeddings, then batch-insert into the collection.
//
// It is a one-shot, non-concurrent batch job. Run scripts/setup first; the
// target collection is replaced wholesale, not updated incrementally.
//
// Environment variables:
//   WEAVIATE_URL, WEAVIATE_API_KEY, COLLECTION_NAME
//   EMBEDDING_PROVIDER, EMBEDDING_SERVICE_URL, EMBEDDING_DIMENSIONS
//
// Usage:
//   go run ./scripts/ingest -csv data/clem_vulgate.csv

package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/vulgate-search-api/internal/models"
	pkgconfig "github.com/vulgate-search-api/pkg/schema/config"
	"github.com/vulgate-search-api/pkg/schema/db"
	pkgservices "github.com/vulgate-search-api/pkg/schema/services"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	wvmodels "github.com/weaviate/weaviate/entities/models"
)

const (
	embedBatchSize  = 64  // verses per embedding request
	insertBatchSize = 200 // objects per Weaviate batch insert
)

func main() {
	csvPath := flag.String("csv", "data/clem_vulgate.csv", "Corpus CSV with book,chapter,verse,text columns")
	checkpointPath := flag.String("checkpoint", "data/clem_vulgate_vectors.csv", "Checkpoint CSV written with an embedding column")
	flag.Parse()

	godotenv.Load()
	cfg := pkgconfig.GetConfig()

	ctx := context.Background()

	verses, err := readCorpus(*csvPath)
	if err != nil {
		log.Fatalf("Failed to read corpus: %v", err)
	}
	log.Printf("Read %d verses from %s", len(verses), *csvPath)

	embeddingsSvc, err := pkgservices.NewEmbeddingsService(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize embeddings service: %v", err)
	}
	defer embeddingsSvc.Close()

	vectors := make([][]float32, 0, len(verses))
	for start := 0; start < len(verses); start += embedBatchSize {
		end := min(start+embedBatchSize, len(verses))
		texts := make([]string, 0, end-start)
		for _, v := range verses[start:end] {
			texts = append(texts, v.Text)
		}
		batch, err := embeddingsSvc.EmbedVerses(ctx, texts)
		if err != nil {
			log.Fatalf("Failed to embed batch at verse %d: %v", start, err)
		}
		vectors = append(vectors, batch...)
		log.Printf("Embedded %d/%d verses", end, len(verses))
	}

	if err := writeCheckpoint(*checkpointPath, verses, vectors); err != nil {
		log.Fatalf("Failed to write checkpoint: %v", err)
	}
	log.Printf("Wrote checkpoint to %s", *checkpointPath)

	client, err := db.NewWeaviateClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create Weaviate client: %v", err)
	}

	total := 0
	for start := 0; start < len(verses); start += insertBatchSize {
		end := min(start+insertBatchSize, len(verses))
		if err := insertBatch(ctx, client, cfg.CollectionName, verses[start:end], vectors[start:end]); err != nil {
			log.Fatalf("Failed to insert batch at verse %d: %v", start, err)
		}
		total = end
		log.Printf("Inserted %d/%d verses", total, len(verses))
	}

	log.Printf("Successfully loaded %d verses into collection %q", total, cfg.CollectionName)
}

// readCorpus parses the corpus CSV. The text column may be named "text" or
// "latin" (the upstream corpus export uses the latter).
func readCorpus(path string) ([]models.Verse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	textCol, ok := cols["text"]
	if !ok {
		if textCol, ok = cols["latin"]; !ok {
			return nil, fmt.Errorf("no text or latin column in header %v", header)
		}
	}
	for _, required := range []string{"book", "chapter", "verse"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("no %s column in header %v", required, header)
		}
	}

	var verses []models.Verse
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		chapter, err := strconv.Atoi(row[cols["chapter"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad chapter: %w", line, err)
		}
		verse, err := strconv.Atoi(row[cols["verse"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad verse: %w", line, err)
		}
		verses = append(verses, models.Verse{
			Book:    row[cols["book"]],
			Chapter: chapter,
			Verse:   verse,
			Text:    row[textCol],
		})
	}
	return verses, nil
}

// writeCheckpoint stores the embedded corpus as CSV with the embedding
// serialized as a JSON array column.
func writeCheckpoint(path string, verses []models.Verse, vectors [][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"book", "chapter", "verse", "text", "embedding"}); err != nil {
		return err
	}
	for i, v := range verses {
		embedding, err := json.Marshal(vectors[i])
		if err != nil {
			return err
		}
		row := []string{v.Book, strconv.Itoa(v.Chapter), strconv.Itoa(v.Verse), v.Text, string(embedding)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func insertBatch(ctx context.Context, client *weaviate.Client, collection string, verses []models.Verse, vectors [][]float32) error {
	objects := make([]*wvmodels.Object, len(verses))
	for i, v := range verses {
		objects[i] = &wvmodels.Object{
			Class: collection,
			Properties: map[string]interface{}{
				"text":    v.Text,
				"book":    v.Book,
				"chapter": v.Chapter,
				"verse":   v.Verse,
			},
			Vector: wvmodels.C11yVector(vectors[i]),
		}
	}

	resp, err := client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
	if err != nil {
		return err
	}
	for _, r := range resp {
		if r.Result != nil && r.Result.Errors != nil && len(r.Result.Errors.Error) > 0 {
			return fmt.Errorf("object insert failed: %s", r.Result.Errors.Error[0].Message)
		}
	}
	return nil
}
