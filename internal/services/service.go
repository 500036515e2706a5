// Package services implements the uniform CRUD contract every hospital
// domain (patients, appointments, beds, ...) is accessed through.
package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/otcheredev/hospital-console/internal/models"
)

// Requester is the subset of the API client the services need
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Service is the five-method contract of a domain collection. T is the
// full record, C the create payload (no base fields) and U a partial patch.
//
// Writes return a Mutation naming what the caller has to refetch; nothing
// is refreshed implicitly. Errors from the client are returned unchanged.
type Service[T any, C any, U any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, input C) (*T, models.Mutation, error)
	Update(ctx context.Context, id string, patch U) (*T, models.Mutation, error)
	Delete(ctx context.Context, id string) (models.Mutation, error)
}

// Resource implements Service over a path prefix
type Resource[T any, C any, U any] struct {
	api     Requester
	name    string
	related []string
}

// NewResource creates a Resource for the collection at /name. related lists
// other collections whose views embed this one and go stale on writes.
func NewResource[T any, C any, U any](api Requester, name string, related ...string) *Resource[T, C, U] {
	return &Resource[T, C, U]{
		api:     api,
		name:    strings.Trim(name, "/"),
		related: related,
	}
}

// Name returns the collection name
func (r *Resource[T, C, U]) Name() string {
	return r.name
}

func (r *Resource[T, C, U]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.api.Get(ctx, r.collectionPath(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T, C, U]) GetByID(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.api.Get(ctx, r.itemPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Create(ctx context.Context, input C) (*T, models.Mutation, error) {
	var out T
	if err := r.api.Post(ctx, r.collectionPath(), input, &out); err != nil {
		return nil, models.Mutation{}, err
	}
	return &out, r.mutation(entityID(&out)), nil
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id string, patch U) (*T, models.Mutation, error) {
	var out T
	if err := r.api.Put(ctx, r.itemPath(id), patch, &out); err != nil {
		return nil, models.Mutation{}, err
	}
	return &out, r.mutation(id), nil
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) (models.Mutation, error) {
	if err := r.api.Delete(ctx, r.itemPath(id)); err != nil {
		return models.Mutation{}, err
	}
	return r.mutation(id), nil
}

// list fetches the collection with extra query parameters
func (r *Resource[T, C, U]) list(ctx context.Context, suffix string, query url.Values) ([]T, error) {
	path := r.collectionPath() + suffix
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []T
	if err := r.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T, C, U]) mutation(id string) models.Mutation {
	invalidates := make([]string, 0, len(r.related)+1)
	invalidates = append(invalidates, r.name)
	invalidates = append(invalidates, r.related...)
	return models.Mutation{
		Resource:    r.name,
		ID:          id,
		Invalidates: invalidates,
	}
}

func (r *Resource[T, C, U]) collectionPath() string {
	return "/" + r.name
}

func (r *Resource[T, C, U]) itemPath(id string) string {
	return "/" + r.name + "/" + url.PathEscape(id)
}

func entityID(v any) string {
	if e, ok := v.(models.Entity); ok {
		return e.GetID()
	}
	return ""
}
