package db

import (
	"fmt"
	"strings"

	"github.com/vulgate-search-api/pkg/schema/config"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
)

// NewWeaviateClient builds a client for the configured Weaviate instance.
// The client wraps a stateless HTTP transport and is safe to share across
// concurrent requests.
func NewWeaviateClient(cfg *config.Config) (*weaviate.Client, error) {
	if err := cfg.ValidateWeaviate(); err != nil {
		return nil, err
	}

	// WEAVIATE_URL may be a bare cloud host or carry a scheme.
	host := cfg.WeaviateURL
	scheme := "https"
	if parts := strings.SplitN(host, "://", 2); len(parts) == 2 {
		scheme, host = parts[0], parts[1]
	}
	host = strings.TrimSuffix(host, "/")

	client, err := weaviate.NewClient(weaviate.Config{
		Host:       host,
		Scheme:     scheme,
		AuthConfig: auth.ApiKey{Value: cfg.WeaviateAPIKey},
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return client, nil
}
