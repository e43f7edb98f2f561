// Package breeds talks to TheDogAPI breed directory.
package breeds

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doggywalk/config"
	domainerrors "doggywalk/internal/domain/errors"
	"doggywalk/internal/domain/service"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const apiKeyHeader = "x-api-key"

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Redis  *redis.Client `optional:"true"`
}

// New builds the catalog client, wrapped in a redis cache when redis is available.
func New(params Params) service.BreedCatalog {
	cfg := params.Config.BreedCatalog
	if cfg == nil {
		cfg = &config.BreedCatalogConfig{}
	}

	var catalog service.BreedCatalog = NewClient(cfg.BaseURL, cfg.APIKey, &http.Client{Timeout: cfg.Timeout})
	if params.Redis != nil && cfg.CacheTTL > 0 {
		catalog = NewCachedCatalog(catalog, params.Redis, cfg.CacheTTL, params.Logger)
	}

	return catalog
}

type breed struct {
	Name        string `json:"name"`
	Temperament string `json:"temperament"`
}

// Client is a minimal TheDogAPI client.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL, apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// ListBreeds returns every breed name in catalog order.
func (c *Client) ListBreeds(ctx context.Context) ([]string, error) {
	var breeds []breed
	if err := c.get(ctx, "/breeds", nil, &breeds); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(breeds))
	for _, b := range breeds {
		if b.Name != "" {
			names = append(names, b.Name)
		}
	}

	return names, nil
}

// LookupTemperament prefers an exact (case-insensitive) name match and falls back
// to the first search hit.
func (c *Client) LookupTemperament(ctx context.Context, name string) (string, bool, error) {
	var breeds []breed
	if err := c.get(ctx, "/breeds/search", url.Values{"q": {name}}, &breeds); err != nil {
		return "", false, err
	}
	if len(breeds) == 0 {
		return "", false, nil
	}

	match := breeds[0]
	for _, b := range breeds {
		if strings.EqualFold(b.Name, name) {
			match = b

			break
		}
	}

	return match.Temperament, match.Temperament != "", nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build breed catalog request")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domainerrors.ErrUpstreamUnavailable.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domainerrors.ErrUpstreamUnavailable.WrapMessage("breed catalog returned " + resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerrors.ErrUpstreamUnavailable.WrapMessage("decode breed catalog response: " + err.Error())
	}

	return nil
}
