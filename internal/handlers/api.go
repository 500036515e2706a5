package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/otcheredev/hospital-console/internal/apiclient"
	"github.com/otcheredev/hospital-console/internal/middleware"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/otcheredev/hospital-console/internal/services"
	"github.com/rs/zerolog/log"
)

// AuditWriter records console writes
type AuditWriter interface {
	Create(ctx context.Context, entry *models.ConsoleAuditLog) error
}

// API proxies domain requests to the hospital API on behalf of the caller
type API struct {
	client *apiclient.Client
	audit  AuditWriter
}

// NewAPI creates the domain proxy. audit may be nil.
func NewAPI(client *apiclient.Client, audit AuditWriter) *API {
	return &API{client: client, audit: audit}
}

// services binds a fresh client session to the caller. The session store
// and token of one request never reach another.
func (a *API) services(r *http.Request) *services.Services {
	c := a.client.CloneWithStore(middleware.GetSessionStore(r.Context()))
	if user, ok := middleware.GetUser(r.Context()); ok {
		c.SetToken(user.Token)
	}
	return services.New(c)
}

// record writes a console audit entry for a mutation. Failures are logged
// and do not affect the response.
func (a *API) record(r *http.Request, action, resource, id string, start time.Time, err error) {
	if a.audit == nil {
		return
	}

	entry := &models.ConsoleAuditLog{
		Action:       action,
		ResourceType: resource,
		ResourceID:   id,
		IPAddress:    r.RemoteAddr,
		Status:       "success",
		Duration:     time.Since(start).Milliseconds(),
	}
	if res, ok := middleware.GetResolution(r.Context()); ok {
		entry.TenantID = res.TenantID
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		entry.UserID = user.UserID
		entry.Role = user.Role
	}
	if err != nil {
		entry.Status = "failure"
		entry.ErrorMessage = err.Error()
	}

	if werr := a.audit.Create(context.WithoutCancel(r.Context()), entry); werr != nil {
		log.Error().Err(werr).Str("resource", resource).Str("action", action).Msg("Failed to write console audit log")
	}
}

// mutationResult is the payload of a successful write
type mutationResult[T any] struct {
	Item     *T              `json:"item,omitempty"`
	Mutation models.Mutation `json:"mutation"`
}
