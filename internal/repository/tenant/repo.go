// Package tenant persists tenant records and the API-key lookup used by the
// authentication middleware.
package tenant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/haremir/mergenX/internal/db"
	"github.com/haremir/mergenX/internal/domain"
)

// Hash field names of a stored tenant.
const (
	fieldSlug       = "slug"
	fieldName       = "name"
	fieldAPIKeyHash = "api_key_hash"
	fieldActive     = "active"
)

// store is the consumer interface for tenant persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements tenant resolution for the auth middleware and admin paths.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a tenant repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// HashAPIKey returns the SHA-256 hex digest of a raw API key. Raw keys are
// never stored.
func HashAPIKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}

// ResolveAPIKey maps a raw API key to its tenant. An unknown key yields
// ErrUnauthenticated; a known key of a deactivated tenant yields
// ErrTenantInactive.
func (r *Repo) ResolveAPIKey(ctx context.Context, apiKey string) (domain.Tenant, error) {
	if apiKey == "" {
		return domain.Tenant{}, domain.ErrUnauthenticated
	}

	slugBytes, err := r.store.Get(ctx, r.lookupKey(HashAPIKey(apiKey)))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Tenant{}, domain.ErrUnauthenticated
		}
		return domain.Tenant{}, fmt.Errorf("resolve api key: %w", err)
	}

	t, err := r.Get(ctx, string(slugBytes))
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			// Dangling lookup entry, treat as unknown key.
			return domain.Tenant{}, domain.ErrUnauthenticated
		}
		return domain.Tenant{}, err
	}
	if !t.Active() {
		return domain.Tenant{}, fmt.Errorf("tenant %s: %w", t.Slug(), domain.ErrTenantInactive)
	}
	return t, nil
}

// Get loads a tenant by slug.
func (r *Repo) Get(ctx context.Context, slug string) (domain.Tenant, error) {
	fields, err := r.store.HGetAll(ctx, r.tenantKey(slug))
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("get tenant %s: %w", slug, err)
	}
	if len(fields) == 0 {
		return domain.Tenant{}, fmt.Errorf("tenant %s: %w", slug, domain.ErrTenantNotFound)
	}
	return domain.ReconstructTenant(
		fields[fieldSlug],
		fields[fieldName],
		fields[fieldAPIKeyHash],
		fields[fieldActive] == "1",
	), nil
}

// Put stores a tenant and its API-key lookup entry.
func (r *Repo) Put(ctx context.Context, t domain.Tenant) error {
	active := "0"
	if t.Active() {
		active = "1"
	}

	fields := map[string]string{
		fieldSlug:       t.Slug(),
		fieldName:       t.Name(),
		fieldAPIKeyHash: t.APIKeyHash(),
		fieldActive:     active,
	}
	if err := r.store.HSet(ctx, r.tenantKey(t.Slug()), fields); err != nil {
		return fmt.Errorf("put tenant %s: %w", t.Slug(), err)
	}

	if err := r.store.Set(ctx, r.lookupKey(t.APIKeyHash()), []byte(t.Slug())); err != nil {
		return fmt.Errorf("put tenant %s lookup: %w", t.Slug(), err)
	}
	return nil
}

func (r *Repo) tenantKey(slug string) string {
	return r.keyPrefix + "tenant:" + slug
}

func (r *Repo) lookupKey(apiKeyHash string) string {
	return r.keyPrefix + "apikey:" + apiKeyHash
}
