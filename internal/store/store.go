// Package store is the durable key-value state the console reads on behalf
// of a browser session: the bearer token and the local tier override.
package store

import (
	"context"
	"errors"
)

// Well-known keys
const (
	KeyAuthToken    = "auth_token"
	KeyTierOverride = "tier_override"
)

// ErrNotFound is returned when a key holds no value
var ErrNotFound = errors.New("key not found")

// Store defines the key-value persistence interface
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Scoped prefixes every key with a namespace, so one backing store can
// serve several sessions or tenants.
type Scoped struct {
	inner  Store
	prefix string
}

// NewScoped wraps s so all keys live under namespace
func NewScoped(s Store, namespace string) *Scoped {
	return &Scoped{inner: s, prefix: namespace + ":"}
}

func (s *Scoped) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}
