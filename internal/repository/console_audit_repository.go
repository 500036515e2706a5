package repository

import (
	"context"
	"fmt"

	"github.com/otcheredev/hospital-console/internal/models"
	"gorm.io/gorm"
)

// ConsoleAuditRepository handles console audit log database operations
type ConsoleAuditRepository struct {
	db *gorm.DB
}

// NewConsoleAuditRepository creates a new console audit repository
func NewConsoleAuditRepository(db *gorm.DB) *ConsoleAuditRepository {
	return &ConsoleAuditRepository{db: db}
}

// Create creates a new audit log entry
func (r *ConsoleAuditRepository) Create(ctx context.Context, entry *models.ConsoleAuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// ListByTenant returns a tenant's audit logs, newest first
func (r *ConsoleAuditRepository) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]models.ConsoleAuditLog, error) {
	var logs []models.ConsoleAuditLog
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}
	return logs, nil
}
