package runtimeconfig

import "github.com/otcheredev/hospital-console/internal/features"

// Branding is the look of a tenant
type Branding struct {
	Name         string `json:"name"`
	ShortName    string `json:"shortName"`
	LogoURL      string `json:"logoUrl,omitempty"`
	PrimaryColor string `json:"primaryColor"`
}

// Tenant is one organization served by the console
type Tenant struct {
	ID       string        `json:"id"`
	Tier     features.Tier `json:"tier"`
	Branding Branding      `json:"branding"`
	// Domains are the exact hostnames that belong to this tenant
	Domains []string `json:"domains,omitempty"`
}

// DefaultBranding is used for tenants that define none
func DefaultBranding(tier features.Tier) Branding {
	switch tier {
	case features.TierClinic:
		return Branding{Name: "MediCare Clinic", ShortName: "MediCare", PrimaryColor: "#0d9488"}
	case features.TierBigHospital:
		return Branding{Name: "MediCare Health System", ShortName: "MediCare HS", PrimaryColor: "#1e3a8a"}
	default:
		return Branding{Name: "MediCare Hospital", ShortName: "MediCare", PrimaryColor: "#2563eb"}
	}
}

// localTenant stands in for a tenant chosen by the local override
func localTenant(tier features.Tier) Tenant {
	return Tenant{ID: "local-" + string(tier), Tier: tier, Branding: DefaultBranding(tier)}
}

// DefaultTenant is served when nothing matches
func DefaultTenant() Tenant {
	return Tenant{ID: "default", Tier: features.DefaultTier, Branding: DefaultBranding(features.DefaultTier)}
}

// DemoTenants is the built-in domain table used in development
func DemoTenants() []Tenant {
	return []Tenant{
		{ID: "demo-clinic", Tier: features.TierClinic, Branding: DefaultBranding(features.TierClinic), Domains: []string{"clinic.hms.local"}},
		{ID: "demo-hospital", Tier: features.TierHospital, Branding: DefaultBranding(features.TierHospital), Domains: []string{"hospital.hms.local"}},
		{ID: "demo-health", Tier: features.TierBigHospital, Branding: DefaultBranding(features.TierBigHospital), Domains: []string{"enterprise.hms.local"}},
	}
}
