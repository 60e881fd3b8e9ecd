// Package chi exposes the HTTP API: hybrid search, catalog management,
// health, and metrics.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/haremir/mergenX/internal/domain"
	"github.com/haremir/mergenX/internal/domain/search/request"
	"github.com/haremir/mergenX/internal/metrics"
	cataloguc "github.com/haremir/mergenX/internal/usecase/catalog"
	healthuc "github.com/haremir/mergenX/internal/usecase/health"
	searchuc "github.com/haremir/mergenX/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers over the usecase layer.
type Server struct {
	search        *searchuc.Service
	catalog       *cataloguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	catalog *cataloguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		catalog: catalog,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidScope, http.StatusForbidden, codeInvalidScope),
		sentinelHandler(domain.ErrUnauthenticated, http.StatusUnauthorized, codeUnauthenticated),
		sentinelHandler(domain.ErrTenantInactive, http.StatusForbidden, codeTenantInactive),
		sentinelHandler(domain.ErrHotelNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrTenantNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEncodingFailed, http.StatusInternalServerError, codeEncodingFailed),
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, codeEmbeddingProvider),
	}
	return s
}

// Routes mounts all handlers on a router. The auth middleware runs before
// every handler except health and metrics.
func (s *Server) Routes(r chi.Router, resolver TenantResolver) {
	r.Use(metrics.Middleware())
	r.Use(TenantAuthMiddleware(resolver))

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search/hybrid", s.SearchHybrid)
		r.Route("/hotels", func(r chi.Router) {
			r.Post("/", s.IngestHotels)
			r.Get("/", s.ListHotels)
			r.Get("/{id}", s.GetHotel)
			r.Delete("/{id}", s.DeleteHotel)
		})
	})
}

// SearchHybrid handles POST /v1/search/hybrid.
func (s *Server) SearchHybrid(w http.ResponseWriter, r *http.Request) {
	tenant, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing tenant scope")
		return
	}

	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	req, err := request.New(body.Query, body.Limit, body.City, body.District, body.WithSummary)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), tenant.Slug(), &req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(tenant.Slug(), "error").Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues(tenant.Slug(), "success").Inc()

	items := make([]searchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchResultToItem(&resp.Results[i])
	}

	out := searchResponse{
		Query:    resp.Query,
		Results:  items,
		Count:    len(items),
		Degraded: resp.Degraded,
	}
	if resp.HasSummary {
		out.Summary = &resp.Summary
	}

	writeJSON(w, http.StatusOK, out)
}

// IngestHotels handles POST /v1/hotels.
func (s *Server) IngestHotels(w http.ResponseWriter, r *http.Request) {
	tenant, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing tenant scope")
		return
	}

	var body ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	inputs := make([]cataloguc.Input, len(body.Hotels))
	for i := range body.Hotels {
		inputs[i] = inputToUsecase(&body.Hotels[i])
	}

	hotels, err := s.catalog.Ingest(r.Context(), tenant.Slug(), inputs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]ingestedItem, len(hotels))
	for i := range hotels {
		items[i] = ingestedItem{ID: hotels[i].ID(), Seq: hotels[i].Seq()}
	}

	writeJSON(w, http.StatusCreated, ingestResponse{Items: items, Count: len(items)})
}

// ListHotels handles GET /v1/hotels.
func (s *Server) ListHotels(w http.ResponseWriter, r *http.Request) {
	tenant, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing tenant scope")
		return
	}

	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	hotels, total, err := s.catalog.List(
		r.Context(), tenant.Slug(), q.Get("city"), q.Get("district"), offset, limit,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]hotelItem, len(hotels))
	for i := range hotels {
		items[i] = hotelToItem(&hotels[i])
	}

	writeJSON(w, http.StatusOK, hotelListResponse{
		Items:  items,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// GetHotel handles GET /v1/hotels/{id}.
func (s *Server) GetHotel(w http.ResponseWriter, r *http.Request) {
	tenant, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing tenant scope")
		return
	}

	h, err := s.catalog.Get(r.Context(), tenant.Slug(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, hotelToItem(&h))
}

// DeleteHotel handles DELETE /v1/hotels/{id}.
func (s *Server) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	tenant, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing tenant scope")
		return
	}

	if err := s.catalog.Delete(r.Context(), tenant.Slug(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	resp := healthResponse{
		Status: string(report.Status),
		Checks: checks,
	}
	if report.EmbeddingModel != "" {
		resp.Embedding = &healthModelInfo{
			Model:      report.EmbeddingModel,
			Dimensions: report.EmbeddingDimension,
		}
	}
	if report.GenerationModel != "" {
		resp.Generation = &healthModelInfo{Model: report.GenerationModel}
	}

	writeJSON(w, httpStatus, resp)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrInvalidScope,
		domain.ErrUnauthenticated,
		domain.ErrTenantInactive,
		domain.ErrHotelNotFound,
		domain.ErrTenantNotFound,
		domain.ErrEncodingFailed,
		domain.ErrEmbeddingProvider,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
