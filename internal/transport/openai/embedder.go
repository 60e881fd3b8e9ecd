// Package openai wraps OpenAI-compatible embedding and chat-completion
// providers behind the domain contracts.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/haremir/mergenX/internal/domain"
	"github.com/haremir/mergenX/internal/metrics"
)

// Compile-time check: Embedder implements the domain contract.
var _ domain.Embedder = (*Embedder)(nil)

// Embedding roles. The provider prepends a role-specific instruction, so
// query and document vectors live in deliberately different subspaces.
const (
	roleQuery    = "query"
	roleDocument = "document"
)

// Embedder is an embedding provider using the OpenAI-compatible API.
type Embedder struct {
	client         *openai.Client
	model          openai.EmbeddingModel
	dimensions     int
	queryPrefix    string
	documentPrefix string
}

// EmbedderConfig holds the embedding provider settings.
type EmbedderConfig struct {
	APIKey              string
	BaseURL             string
	Model               string
	Dimensions          int
	QueryInstruction    string
	DocumentInstruction string
}

// NewEmbedder creates an OpenAI-compatible embedding provider.
func NewEmbedder(cfg *EmbedderConfig) *Embedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Embedder{
		client:         openai.NewClientWithConfig(clientCfg),
		model:          openai.EmbeddingModel(cfg.Model),
		dimensions:     cfg.Dimensions,
		queryPrefix:    cfg.QueryInstruction,
		documentPrefix: cfg.DocumentInstruction,
	}
}

// EmbedQuery implements domain.Embedder for search queries.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty query text: %w", domain.ErrInvalidInput)
	}

	vectors, err := e.embed(ctx, roleQuery, []string{e.queryPrefix + text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedDocuments implements domain.Embedder for catalog texts. The batch is
// all-or-nothing so callers can zip inputs and vectors by index.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty batch: %w", domain.ErrInvalidInput)
	}

	inputs := make([]string, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("empty text at index %d: %w", i, domain.ErrInvalidInput)
		}
		inputs = append(inputs, e.documentPrefix+text)
	}

	return e.embed(ctx, roleDocument, inputs)
}

// Dimension implements domain.Embedder.
func (e *Embedder) Dimension() int { return e.dimensions }

// Model implements domain.Embedder.
func (e *Embedder) Model() string { return string(e.model) }

func (e *Embedder) embed(ctx context.Context, role string, inputs []string) ([][]float32, error) {
	req := openai.EmbeddingRequest{
		Input:          inputs,
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(string(e.model), role, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(string(e.model), "api_error").Inc()
		return nil, parseAPIError(err)
	}

	if len(resp.Data) != len(inputs) {
		metrics.EmbeddingRequestsTotal.WithLabelValues(string(e.model), role, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(string(e.model), "incomplete_response").Inc()
		return nil, fmt.Errorf("expected %d embeddings, got %d: %w",
			len(inputs), len(resp.Data), domain.ErrEmbeddingProvider)
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		if e.dimensions > 0 && len(d.Embedding) != e.dimensions {
			metrics.EmbeddingRequestsTotal.WithLabelValues(string(e.model), role, "error").Inc()
			metrics.EmbeddingErrorsTotal.WithLabelValues(string(e.model), "dimension_mismatch").Inc()
			return nil, fmt.Errorf("vector %d has dimension %d, want %d: %w",
				i, len(d.Embedding), e.dimensions, domain.ErrEncodingFailed)
		}
		vectors[i] = d.Embedding
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(string(e.model), role, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(string(e.model), role).Observe(duration.Seconds())

	if total := resp.Usage.TotalTokens; total > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(string(e.model), "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.EmbeddingTokensTotal.WithLabelValues(string(e.model), "total").Add(float64(total))
	}

	return vectors, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrEmbeddingProvider for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrEmbeddingProvider

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("embedding API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("embedding API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("embedding request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
