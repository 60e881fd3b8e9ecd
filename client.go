// Package mergenx is the embedded SDK: it wires the search and catalog
// services over a Redis store in-process, without the HTTP layer.
package mergenx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/haremir/mergenX/internal/db/redis"
	"github.com/haremir/mergenX/internal/domain"
	"github.com/haremir/mergenX/internal/domain/search/request"
	"github.com/haremir/mergenX/internal/domain/search/result"
	logpkg "github.com/haremir/mergenX/internal/logger"
	catalogrepo "github.com/haremir/mergenX/internal/repository/catalog"
	tenantrepo "github.com/haremir/mergenX/internal/repository/tenant"
	openaiTransport "github.com/haremir/mergenX/internal/transport/openai"
	cataloguc "github.com/haremir/mergenX/internal/usecase/catalog"
	healthuc "github.com/haremir/mergenX/internal/usecase/health"
	searchuc "github.com/haremir/mergenX/internal/usecase/search"
	summaryuc "github.com/haremir/mergenX/internal/usecase/summary"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the mergenx SDK entry point.
type Client struct {
	store       *dbRedis.Store
	searchSvc   *searchuc.Service
	catalogSvc  *cataloguc.Service
	healthSvc   *healthuc.Service
	catalogRepo *catalogrepo.Repo
	tenantRepo  *tenantrepo.Repo
	logger      *zap.Logger
}

// reqCtx threads the configured logger through per-call contexts, where the
// services pick it up via logger.FromContext.
func (c *Client) reqCtx(ctx context.Context) context.Context {
	return logpkg.ContextWithDefault(ctx, c.logger)
}

// New creates a Client, connects to the database, and ensures the catalog
// index exists. The provided context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:       "mergenx:",
		hnswM:           32,
		hnswEFConstruct: 400,
		maxBatchSize:    100,
		logger:          zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("mergenx: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("mergenx: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("mergenx: database not ready: %w", err)
	}

	return wireClient(ctx, store, cfg)
}

func wireClient(ctx context.Context, store *dbRedis.Store, cfg *clientConfig) (*Client, error) {
	dimensions := 768
	if cfg.embedding != nil && cfg.embedding.Dimensions > 0 {
		dimensions = cfg.embedding.Dimensions
	}

	catalogRepo := catalogrepo.New(store, cfg.keyPrefix, catalogrepo.IndexSettings{
		Dimensions:  dimensions,
		M:           cfg.hnswM,
		EFConstruct: cfg.hnswEFConstruct,
	})
	if err := catalogRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("mergenx: ensure index: %w", err)
	}
	tenantRepo := tenantrepo.New(store, cfg.keyPrefix)

	// Noop providers keep the client usable without credentials: ingestion
	// and search fail with a clear error, summaries just come back absent.
	var embedder interface {
		searchuc.Embedder
		cataloguc.Embedder
	} = noopEmbedder{}
	var embChecker healthuc.EmbeddingChecker
	if cfg.embedding != nil {
		e := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:              cfg.embedding.APIKey,
			BaseURL:             cfg.embedding.BaseURL,
			Model:               cfg.embedding.Model,
			Dimensions:          dimensions,
			QueryInstruction:    cfg.embedding.QueryInstruction,
			DocumentInstruction: cfg.embedding.DocumentInstruction,
		})
		embedder = e
		embChecker = e
	}

	var summarizer searchuc.Summarizer = noopSummarizer{}
	var genChecker healthuc.GenerationChecker
	if cfg.generation != nil {
		g := openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			APIKey:      cfg.generation.APIKey,
			BaseURL:     cfg.generation.BaseURL,
			Model:       cfg.generation.Model,
			Temperature: cfg.generation.Temperature,
			MaxTokens:   cfg.generation.MaxTokens,
		})
		summarizer = summaryuc.New(g, cfg.generation.Timeout)
		genChecker = g
	}

	return &Client{
		store:       store,
		searchSvc:   searchuc.New(catalogRepo, embedder, summarizer),
		catalogSvc:  cataloguc.New(catalogRepo, embedder, cfg.maxBatchSize),
		healthSvc:   healthuc.New(store, embChecker, genChecker),
		catalogRepo: catalogRepo,
		tenantRepo:  tenantRepo,
		logger:      cfg.logger,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(c.reqCtx(ctx)); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs the hybrid pipeline for one tenant-scoped query.
func (c *Client) Search(ctx context.Context, tenantID string, p SearchParams) (*SearchResponse, error) {
	req, err := request.New(p.Query, p.Limit, p.City, p.District, p.WithSummary)
	if err != nil {
		return nil, mapErr(err)
	}

	resp, err := c.searchSvc.Search(c.reqCtx(ctx), tenantID, &req)
	if err != nil {
		return nil, mapErr(err)
	}

	hits := make([]SearchHit, len(resp.Results))
	for i := range resp.Results {
		hits[i] = hitFromDomain(&resp.Results[i])
	}
	return &SearchResponse{
		Query:      resp.Query,
		Hits:       hits,
		Summary:    resp.Summary,
		HasSummary: resp.HasSummary,
		Degraded:   resp.Degraded,
	}, nil
}

// Ingest validates, embeds, and stores a batch of catalog entries.
func (c *Client) Ingest(ctx context.Context, tenantID string, hotels []HotelInput) ([]Ingested, error) {
	inputs := make([]cataloguc.Input, len(hotels))
	for i := range hotels {
		inputs[i] = inputToUsecase(&hotels[i])
	}

	stored, err := c.catalogSvc.Ingest(c.reqCtx(ctx), tenantID, inputs)
	if err != nil {
		return nil, mapErr(err)
	}

	out := make([]Ingested, len(stored))
	for i := range stored {
		out[i] = Ingested{ID: stored[i].ID(), Seq: stored[i].Seq()}
	}
	return out, nil
}

// GetHotel retrieves a catalog entry within the tenant scope.
func (c *Client) GetHotel(ctx context.Context, tenantID, id string) (Hotel, error) {
	h, err := c.catalogSvc.Get(c.reqCtx(ctx), tenantID, id)
	if err != nil {
		return Hotel{}, mapErr(err)
	}
	return hotelFromDomain(&h), nil
}

// DeleteHotel removes a catalog entry within the tenant scope.
func (c *Client) DeleteHotel(ctx context.Context, tenantID, id string) error {
	return mapErr(c.catalogSvc.Delete(c.reqCtx(ctx), tenantID, id))
}

// ListHotels returns tenant catalog entries in insertion order.
func (c *Client) ListHotels(
	ctx context.Context, tenantID, city, district string, offset, limit int,
) ([]Hotel, int, error) {
	domainHotels, total, err := c.catalogSvc.List(c.reqCtx(ctx), tenantID, city, district, offset, limit)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	hotels := make([]Hotel, len(domainHotels))
	for i := range domainHotels {
		hotels[i] = hotelFromDomain(&domainHotels[i])
	}
	return hotels, total, nil
}

// RebuildIndex drops and recreates the catalog index, applying the current
// HNSW settings to the stored entries.
func (c *Client) RebuildIndex(ctx context.Context) error {
	if err := c.catalogRepo.RebuildIndex(c.reqCtx(ctx)); err != nil {
		return fmt.Errorf("mergenx: rebuild index: %w", err)
	}
	return nil
}

// PutTenant provisions or updates a tenant with the given API key.
// The key is stored as a SHA-256 hash, never in the clear.
func (c *Client) PutTenant(ctx context.Context, slug, name, apiKey string, active bool) error {
	t, err := domain.NewTenant(slug, name, tenantrepo.HashAPIKey(apiKey), active)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := c.tenantRepo.Put(c.reqCtx(ctx), t); err != nil {
		return mapErr(err)
	}
	return nil
}

// GetTenant retrieves a tenant record by slug.
func (c *Client) GetTenant(ctx context.Context, slug string) (Tenant, error) {
	t, err := c.tenantRepo.Get(c.reqCtx(ctx), slug)
	if err != nil {
		return Tenant{}, mapErr(err)
	}
	return Tenant{Slug: t.Slug(), Name: t.Name(), Active: t.Active()}, nil
}

// Health reports component availability.
func (c *Client) Health(ctx context.Context) Health {
	report := c.healthSvc.Check(c.reqCtx(ctx))
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return Health{Status: string(report.Status), Checks: checks}
}

// noopEmbedder returns an error on every call (used when no provider configured).
type noopEmbedder struct{}

func (noopEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("mergenx: embedding provider not configured (use WithEmbedding)")
}

func (noopEmbedder) EmbedDocuments(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("mergenx: embedding provider not configured (use WithEmbedding)")
}

func (noopEmbedder) Dimension() int { return 0 }

// noopSummarizer reports summary unavailable, which the search treats as
// a recoverable miss.
type noopSummarizer struct{}

func (noopSummarizer) Summarize(_ context.Context, _ string, _ []result.Result) (string, bool) {
	return "", false
}
