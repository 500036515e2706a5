package handlers

import (
	"net/http"

	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/metrics"
	"github.com/otcheredev/hospital-console/internal/middleware"
	"github.com/otcheredev/hospital-console/internal/navigation"
)

type NavigationHandler struct {
	registry *navigation.Registry
}

func NewNavigationHandler(registry *navigation.Registry) *NavigationHandler {
	return &NavigationHandler{registry: registry}
}

// Get returns the menu of the authenticated user under the request's tier
func (h *NavigationHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	res, ok := middleware.GetResolution(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "runtime configuration not resolved")
		return
	}

	cfg, err := h.registry.Resolve(user.Role, res.Features, res.Text)
	if err != nil {
		metrics.NavigationBuildsTotal.WithLabelValues(roleLabel(user.Role), "error").Inc()
		writeFailure(w, r, err)
		return
	}

	metrics.NavigationBuildsTotal.WithLabelValues(string(cfg.Role), "ok").Inc()
	writeOK(w, http.StatusOK, cfg)
}

// roleLabel bounds the metric label to the known roles
func roleLabel(raw string) string {
	if role, ok := features.ParseRole(raw); ok {
		return string(role)
	}
	return "unknown"
}
