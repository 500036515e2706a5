// Package runtimeconfig decides which tenant, tier and branding are active
// for a request, based on the hostname it arrived on.
package runtimeconfig

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/store"
	"github.com/rs/zerolog/log"
)

// Source names the rule that produced a Resolution
type Source string

const (
	SourceNoContext Source = "no_context"
	SourceDomain    Source = "domain"
	SourceSubdomain Source = "subdomain"
	SourceOverride  Source = "override"
	SourceDefault   Source = "default"
)

// Env is what the resolver may look at. A nil Env, or one with no host,
// means there is no browser context (server-side rendering, CLI).
type Env struct {
	Host string
	// Store holds the session's persisted override; may be nil.
	Store store.Store
}

// Resolution is the runtime configuration of one request or session
type Resolution struct {
	Source   Source                 `json:"source"`
	Host     string                 `json:"host,omitempty"`
	Tier     features.Tier          `json:"tier"`
	TenantID string                 `json:"tenantId"`
	Branding Branding               `json:"branding"`
	Features features.FeatureConfig `json:"features"`
	Text     features.TextConfig    `json:"text"`
}

// Options configures a Resolver
type Options struct {
	Tenants []Tenant
	// BaseDomain enables <tenant>.<BaseDomain> hostnames
	BaseDomain string
	// LocalHosts are the bare development hostnames that honour the
	// persisted tier override
	LocalHosts []string
}

// Resolver maps hostnames onto tenants. It is immutable after construction
// and safe for concurrent use.
type Resolver struct {
	catalog    *features.Catalog
	domains    map[string]Tenant
	tenants    map[string]Tenant
	baseDomain string
	localHosts map[string]bool
}

// NewResolver builds a resolver over catalog
func NewResolver(catalog *features.Catalog, opts Options) (*Resolver, error) {
	r := &Resolver{
		catalog:    catalog,
		domains:    make(map[string]Tenant),
		tenants:    make(map[string]Tenant),
		baseDomain: normalizeHost(opts.BaseDomain),
		localHosts: make(map[string]bool),
	}

	for _, t := range opts.Tenants {
		if _, err := catalog.Lookup(t.Tier); err != nil {
			return nil, fmt.Errorf("tenant %s: %w", t.ID, err)
		}
		if t.Branding == (Branding{}) {
			t.Branding = DefaultBranding(t.Tier)
		}
		id := strings.ToLower(t.ID)
		if _, dup := r.tenants[id]; dup {
			return nil, fmt.Errorf("duplicate tenant %s", t.ID)
		}
		r.tenants[id] = t
		for _, d := range t.Domains {
			host := normalizeHost(d)
			if other, dup := r.domains[host]; dup {
				return nil, fmt.Errorf("domain %s claimed by %s and %s", host, other.ID, t.ID)
			}
			r.domains[host] = t
		}
	}

	hosts := opts.LocalHosts
	if len(hosts) == 0 {
		hosts = []string{"localhost", "127.0.0.1"}
	}
	for _, h := range hosts {
		r.localHosts[normalizeHost(h)] = true
	}

	return r, nil
}

// Resolve applies, in order: no context, exact domain, subdomain, local
// override, default. It never fails and writes nothing.
func (r *Resolver) Resolve(ctx context.Context, env *Env) Resolution {
	if env == nil || strings.TrimSpace(env.Host) == "" {
		return r.build(SourceNoContext, "", DefaultTenant())
	}

	host := normalizeHost(env.Host)

	if t, ok := r.domains[host]; ok {
		return r.build(SourceDomain, host, t)
	}

	if t, ok := r.subdomainTenant(host); ok {
		return r.build(SourceSubdomain, host, t)
	}

	if r.localHosts[host] && env.Store != nil {
		if tier, ok := readOverride(ctx, env.Store); ok {
			return r.build(SourceOverride, host, localTenant(tier))
		}
	}

	return r.build(SourceDefault, host, DefaultTenant())
}

// ResolveTier returns only the tier of Resolve
func (r *Resolver) ResolveTier(ctx context.Context, env *Env) features.Tier {
	return r.Resolve(ctx, env).Tier
}

// ResolveTenantID returns only the tenant id of Resolve
func (r *Resolver) ResolveTenantID(ctx context.Context, env *Env) string {
	return r.Resolve(ctx, env).TenantID
}

// ResolveBranding returns only the branding of Resolve
func (r *Resolver) ResolveBranding(ctx context.Context, env *Env) Branding {
	return r.Resolve(ctx, env).Branding
}

// IsLocalHost reports whether host is a bare development host
func (r *Resolver) IsLocalHost(host string) bool {
	return r.localHosts[normalizeHost(host)]
}

// Tenants returns the known tenants keyed by id
func (r *Resolver) Tenants() map[string]Tenant {
	out := make(map[string]Tenant, len(r.tenants))
	for k, v := range r.tenants {
		out[k] = v
	}
	return out
}

func (r *Resolver) subdomainTenant(host string) (Tenant, bool) {
	for _, parent := range r.subdomainParents() {
		label, found := strings.CutSuffix(host, "."+parent)
		if !found || label == "" || strings.Contains(label, ".") {
			continue
		}
		if t, ok := r.tenants[label]; ok {
			return t, true
		}
	}
	return Tenant{}, false
}

func (r *Resolver) subdomainParents() []string {
	parents := make([]string, 0, len(r.localHosts)+1)
	if r.baseDomain != "" {
		parents = append(parents, r.baseDomain)
	}
	for h := range r.localHosts {
		if net.ParseIP(h) == nil {
			parents = append(parents, h)
		}
	}
	return parents
}

func (r *Resolver) build(source Source, host string, t Tenant) Resolution {
	bundle, err := r.catalog.Lookup(t.Tier)
	if err != nil {
		// tenants are checked against the catalog in NewResolver
		bundle = r.catalog.Default()
	}
	return Resolution{
		Source:   source,
		Host:     host,
		Tier:     bundle.Tier,
		TenantID: t.ID,
		Branding: t.Branding,
		Features: bundle.Features,
		Text:     bundle.Text,
	}
}

func readOverride(ctx context.Context, s store.Store) (features.Tier, bool) {
	raw, err := s.Get(ctx, store.KeyTierOverride)
	if errors.Is(err, store.ErrNotFound) {
		return "", false
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read tier override")
		return "", false
	}
	tier, err := features.ParseTier(raw)
	if err != nil {
		log.Warn().Str("value", raw).Msg("Ignoring invalid tier override")
		return "", false
	}
	return tier, true
}

// SetOverride persists tier as the local override
func SetOverride(ctx context.Context, s store.Store, tier string) (features.Tier, error) {
	t, err := features.ParseTier(tier)
	if err != nil {
		return "", err
	}
	if err := s.Set(ctx, store.KeyTierOverride, string(t)); err != nil {
		return "", fmt.Errorf("failed to save tier override: %w", err)
	}
	return t, nil
}

// ClearOverride removes the local override
func ClearOverride(ctx context.Context, s store.Store) error {
	if err := s.Delete(ctx, store.KeyTierOverride); err != nil {
		return fmt.Errorf("failed to clear tier override: %w", err)
	}
	return nil
}

// normalizeHost lowercases h and strips any port and trailing dot
func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if host, _, err := net.SplitHostPort(h); err == nil {
		h = host
	}
	return strings.TrimSuffix(h, ".")
}
