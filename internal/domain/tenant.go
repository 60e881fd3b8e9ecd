package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Tenant is an isolated customer organization. Every catalog entry and every
// search request is scoped to exactly one tenant.
type Tenant struct {
	slug       string
	name       string
	apiKeyHash string
	active     bool
}

// NewTenant validates and creates a Tenant.
// Slug: lowercase alphanumeric with underscores and hyphens, 1-100 chars.
func NewTenant(slug, name, apiKeyHash string, active bool) (Tenant, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Tenant{}, fmt.Errorf("tenant slug is required")
	}
	if len(slug) > 100 {
		return Tenant{}, fmt.Errorf("tenant slug too long (max 100)")
	}
	if !slugRegex.MatchString(slug) {
		return Tenant{}, fmt.Errorf("tenant slug must be lowercase alphanumeric with underscores and hyphens")
	}
	if name == "" {
		return Tenant{}, fmt.Errorf("tenant name is required")
	}
	if apiKeyHash == "" {
		return Tenant{}, fmt.Errorf("tenant api key hash is required")
	}
	return Tenant{slug: slug, name: name, apiKeyHash: apiKeyHash, active: active}, nil
}

// ReconstructTenant creates a Tenant without validation (storage hydration).
func ReconstructTenant(slug, name, apiKeyHash string, active bool) Tenant {
	return Tenant{slug: slug, name: name, apiKeyHash: apiKeyHash, active: active}
}

// Slug returns the URL-friendly tenant identifier.
func (t *Tenant) Slug() string { return t.slug }

// Name returns the tenant display name.
func (t *Tenant) Name() string { return t.name }

// APIKeyHash returns the SHA-256 hex digest of the tenant API key.
func (t *Tenant) APIKeyHash() string { return t.apiKeyHash }

// Active reports whether the tenant may access the system.
func (t *Tenant) Active() bool { return t.active }

// ValidTenantID reports whether id is a well-formed tenant scope.
func ValidTenantID(id string) bool {
	return id != "" && len(id) <= 100 && slugRegex.MatchString(id)
}
