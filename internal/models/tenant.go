package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantDomain maps a hostname to a tenant (hospital/clinic) and its tier
type TenantDomain struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Domain       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"domain"`
	TenantID     string    `gorm:"type:varchar(100);not null;index" json:"tenant_id"`
	Tier         string    `gorm:"type:varchar(50);not null" json:"tier"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	ShortName    string    `gorm:"type:varchar(50)" json:"short_name"`
	LogoURL      string    `gorm:"type:varchar(500)" json:"logo_url,omitempty"`
	PrimaryColor string    `gorm:"type:varchar(20)" json:"primary_color,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (TenantDomain) TableName() string {
	return "tenant_domains"
}

// BeforeCreate hook
func (t *TenantDomain) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// JWTClaims represents custom JWT claims issued by the authentication provider
type JWTClaims struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// UserContext is the authenticated user, as seen by handlers
type UserContext struct {
	UserID         string
	OrganizationID string
	Role           string
	Token          string
}
