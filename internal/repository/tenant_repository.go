package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantRepository reads and writes the hostname to tenant directory
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// ListActive returns every active tenant with its domains. Rows of one
// tenant must agree on tier; branding is taken from the first row.
func (r *TenantRepository) ListActive(ctx context.Context) ([]runtimeconfig.Tenant, error) {
	var rows []models.TenantDomain
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("tenant_id, domain").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenant domains: %w", err)
	}

	var tenants []runtimeconfig.Tenant
	index := make(map[string]int)
	for _, row := range rows {
		tier, err := features.ParseTier(row.Tier)
		if err != nil {
			return nil, fmt.Errorf("tenant %s domain %s: %w", row.TenantID, row.Domain, err)
		}

		i, seen := index[row.TenantID]
		if !seen {
			tenants = append(tenants, runtimeconfig.Tenant{
				ID:       row.TenantID,
				Tier:     tier,
				Branding: brandingOf(row, tier),
			})
			i = len(tenants) - 1
			index[row.TenantID] = i
		} else if tenants[i].Tier != tier {
			return nil, fmt.Errorf("tenant %s has conflicting tiers %s and %s", row.TenantID, tenants[i].Tier, tier)
		}
		tenants[i].Domains = append(tenants[i].Domains, strings.ToLower(row.Domain))
	}

	return tenants, nil
}

// Seed inserts the domains of tenants, leaving existing domains untouched
func (r *TenantRepository) Seed(ctx context.Context, tenants []runtimeconfig.Tenant) error {
	var rows []models.TenantDomain
	for _, t := range tenants {
		for _, d := range t.Domains {
			rows = append(rows, models.TenantDomain{
				Domain:       strings.ToLower(d),
				TenantID:     t.ID,
				Tier:         string(t.Tier),
				Name:         t.Branding.Name,
				ShortName:    t.Branding.ShortName,
				LogoURL:      t.Branding.LogoURL,
				PrimaryColor: t.Branding.PrimaryColor,
				IsActive:     true,
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "domain"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed tenant domains: %w", err)
	}
	return nil
}

func brandingOf(row models.TenantDomain, tier features.Tier) runtimeconfig.Branding {
	if row.Name == "" {
		return runtimeconfig.DefaultBranding(tier)
	}
	b := runtimeconfig.Branding{
		Name:         row.Name,
		ShortName:    row.ShortName,
		LogoURL:      row.LogoURL,
		PrimaryColor: row.PrimaryColor,
	}
	if b.ShortName == "" {
		b.ShortName = row.Name
	}
	if b.PrimaryColor == "" {
		b.PrimaryColor = runtimeconfig.DefaultBranding(tier).PrimaryColor
	}
	return b
}
