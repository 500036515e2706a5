package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"github.com/otcheredev/hospital-console/internal/store"
)

type contextKey string

const (
	ResolutionKey   contextKey = "resolution"
	SessionStoreKey contextKey = "session_store"
	UserKey         contextKey = "user"
)

// GetResolution returns the runtime configuration of the request
func GetResolution(ctx context.Context) (runtimeconfig.Resolution, bool) {
	res, ok := ctx.Value(ResolutionKey).(runtimeconfig.Resolution)
	return res, ok
}

// GetSessionStore returns the store scoped to the caller's session, or
// nil when the request carried no session id
func GetSessionStore(ctx context.Context) store.Store {
	s, _ := ctx.Value(SessionStoreKey).(store.Store)
	return s
}

// GetUser returns the authenticated user
func GetUser(ctx context.Context) (models.UserContext, bool) {
	user, ok := ctx.Value(UserKey).(models.UserContext)
	return user, ok
}

// WithUser returns ctx carrying user
func WithUser(ctx context.Context, user models.UserContext) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// WithResolution returns ctx carrying res
func WithResolution(ctx context.Context, res runtimeconfig.Resolution) context.Context {
	return context.WithValue(ctx, ResolutionKey, res)
}

func contextWithSession(ctx context.Context, s store.Store) context.Context {
	return context.WithValue(ctx, SessionStoreKey, s)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.Fail(message))
}
