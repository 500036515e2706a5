package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsoleAuditLog records a write made through the console, kept locally
// alongside whatever the hospital API records itself.
type ConsoleAuditLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID     string    `gorm:"type:varchar(100);not null;index" json:"tenant_id"`
	UserID       string    `gorm:"type:varchar(100);index" json:"user_id"`
	Role         string    `gorm:"type:varchar(50)" json:"role"`
	Action       string    `gorm:"type:varchar(100);not null;index" json:"action"` // create, update, delete
	ResourceType string    `gorm:"type:varchar(50);index" json:"resource_type"`
	ResourceID   string    `gorm:"type:varchar(255);index" json:"resource_id"`
	IPAddress    string    `gorm:"type:varchar(45)" json:"ip_address"`
	Status       string    `gorm:"type:varchar(20);index" json:"status"` // success, failure
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	Duration     int64     `json:"duration_ms"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}

// TableName overrides the table name
func (ConsoleAuditLog) TableName() string {
	return "console_audit_logs"
}

// BeforeCreate hook
func (a *ConsoleAuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
