package handlers

import (
	"net/http"

	"github.com/otcheredev/hospital-console/internal/middleware"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"github.com/otcheredev/hospital-console/internal/store"
)

// RuntimeHandler exposes the resolved runtime configuration and the local
// development tier override
type RuntimeHandler struct {
	resolver *runtimeconfig.Resolver
}

func NewRuntimeHandler(resolver *runtimeconfig.Resolver) *RuntimeHandler {
	return &RuntimeHandler{resolver: resolver}
}

type overrideRequest struct {
	Tier string `json:"tier"`
}

// Get returns the configuration resolved for this request
func (h *RuntimeHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, ok := middleware.GetResolution(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "runtime configuration not resolved")
		return
	}
	writeOK(w, http.StatusOK, res)
}

// SetOverride persists a tier for the caller's session on a local host
func (h *RuntimeHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	session, ok := h.overridable(w, r)
	if !ok {
		return
	}

	var req overrideRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := runtimeconfig.SetOverride(r.Context(), session, req.Tier); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, h.resolver.Resolve(r.Context(), &runtimeconfig.Env{Host: r.Host, Store: session}))
}

// ClearOverride removes the caller's tier override
func (h *RuntimeHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	session, ok := h.overridable(w, r)
	if !ok {
		return
	}

	if err := runtimeconfig.ClearOverride(r.Context(), session); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear tier override")
		return
	}
	writeOK(w, http.StatusOK, h.resolver.Resolve(r.Context(), &runtimeconfig.Env{Host: r.Host, Store: session}))
}

// overridable returns the session store when the request may carry an
// override: it needs a session and must arrive on a local host
func (h *RuntimeHandler) overridable(w http.ResponseWriter, r *http.Request) (store.Store, bool) {
	if !h.resolver.IsLocalHost(r.Host) {
		writeError(w, http.StatusConflict, "tier override only applies on local development hosts")
		return nil, false
	}
	session := middleware.GetSessionStore(r.Context())
	if session == nil {
		writeError(w, http.StatusBadRequest, "a session id is required")
		return nil, false
	}
	return session, true
}
