// Package summary turns ranked search results into a short natural-language
// answer. Summarization is strictly best-effort: any provider failure is
// swallowed and the search proceeds without a summary.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haremir/mergenX/internal/domain/search/result"
	"github.com/haremir/mergenX/internal/logger"
	"github.com/haremir/mergenX/internal/metrics"
)

const systemPrompt = `You are an expert Turkish travel assistant helping users find the perfect hotel.
You have access to search results and should provide a personalized, helpful summary.
- Be concise but informative (2-3 sentences)
- Highlight key features (star rating, concept, amenities)
- Avoid generic responses
- Use Turkish if the query is in Turkish, English if the query is in English`

// Service generates summaries for ranked hotel results.
type Service struct {
	gen     Generator
	timeout time.Duration
}

// New creates a summary service. A non-zero timeout caps each generation call.
func New(gen Generator, timeout time.Duration) *Service {
	return &Service{gen: gen, timeout: timeout}
}

// Model returns the generation model identifier for introspection.
func (s *Service) Model() string {
	return s.gen.Model()
}

// Summarize generates a summary of the results in rank order. It never
// returns an error: ok is false when the provider fails or produces an
// empty completion.
func (s *Service) Summarize(ctx context.Context, query string, results []result.Result) (string, bool) {
	if len(results) == 0 {
		return "", false
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, systemPrompt, query, buildContextBlock(results))
	metrics.SummaryRequestDuration.WithLabelValues(s.gen.Model()).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SummaryRequestsTotal.WithLabelValues(s.gen.Model(), "error").Inc()
		logger.FromContext(ctx).Warn("summary generation failed", zap.Error(err))
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		metrics.SummaryRequestsTotal.WithLabelValues(s.gen.Model(), "empty").Inc()
		return "", false
	}

	metrics.SummaryRequestsTotal.WithLabelValues(s.gen.Model(), "success").Inc()
	return text, true
}

// buildContextBlock formats the results in rank order for the model. Keeping
// the numbering aligned with the ranked list lets the model reference
// "the first hotel" correctly.
func buildContextBlock(results []result.Result) string {
	var b strings.Builder
	b.WriteString("Found hotels:\n\n")

	for i := range results {
		h := results[i].Hotel()

		amenities := "N/A"
		if len(h.Amenities()) > 0 {
			amenities = strings.Join(h.Amenities(), ", ")
		}

		fmt.Fprintf(&b, "%d. %s\n", i+1, h.Name())
		fmt.Fprintf(&b, "   - Concept: %s\n", orNA(h.Concept()))
		fmt.Fprintf(&b, "   - Stars: %d/5\n", h.Stars())
		fmt.Fprintf(&b, "   - Price: %s %s/night\n", h.Price().String(), h.Currency())
		fmt.Fprintf(&b, "   - Area: %s\n", orNA(h.Area()))
		fmt.Fprintf(&b, "   - Amenities: %s\n\n", amenities)
	}

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
