package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/otcheredev/hospital-console/internal/models"
)

// AuditService reads the audit trail kept by the hospital API
type AuditService struct {
	*Resource[models.AuditEntry, models.AuditEntryInput, models.AuditEntryPatch]
}

// NewAuditService creates a new audit service
func NewAuditService(api Requester) *AuditService {
	return &AuditService{
		Resource: NewResource[models.AuditEntry, models.AuditEntryInput, models.AuditEntryPatch](
			api, ResourceAuditLogs),
	}
}

// GetPage returns one page of audit entries, newest first. page starts at 1.
func (s *AuditService) GetPage(ctx context.Context, page, limit int) ([]models.AuditEntry, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return s.list(ctx, "", q)
}
