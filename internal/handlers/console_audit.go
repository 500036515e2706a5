package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/otcheredev/hospital-console/internal/middleware"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/rs/zerolog/log"
)

// AuditReader lists console audit logs
type AuditReader interface {
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]models.ConsoleAuditLog, error)
}

// ConsoleAuditHandler serves the writes made through this console for the
// request's tenant
type ConsoleAuditHandler struct {
	repo AuditReader
}

func NewConsoleAuditHandler(repo AuditReader) *ConsoleAuditHandler {
	return &ConsoleAuditHandler{repo: repo}
}

func (h *ConsoleAuditHandler) List(w http.ResponseWriter, r *http.Request) {
	res, ok := middleware.GetResolution(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "runtime configuration not resolved")
		return
	}

	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, err := h.repo.ListByTenant(r.Context(), res.TenantID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("tenant_id", res.TenantID).Msg("Failed to list console audit logs")
		writeError(w, http.StatusInternalServerError, "failed to read audit logs")
		return
	}
	writeOK(w, http.StatusOK, nonNil(logs))
}
