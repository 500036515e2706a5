package features

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is a product tier
type Tier string

const (
	TierClinic      Tier = "clinic"
	TierHospital    Tier = "hospital"
	TierBigHospital Tier = "big_hospital"
)

// AllTiers lists every declared tier
var AllTiers = []Tier{TierClinic, TierHospital, TierBigHospital}

// DefaultTier is served whenever nothing more specific applies
const DefaultTier = TierHospital

// ErrUnknownTier is returned for tier names outside AllTiers
var ErrUnknownTier = errors.New("unknown tier")

// ParseTier maps a tier name onto the declared set
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTiers {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Bundle is the feature matrix and copy served for one tier
type Bundle struct {
	Tier     Tier          `json:"tier"`
	Features FeatureConfig `json:"features"`
	Text     TextConfig    `json:"text"`
}

// Catalog holds the bundle of every tier. It is built once at startup and
// only read afterwards.
type Catalog struct {
	bundles map[Tier]Bundle
}

// DefaultCatalog returns the built-in tier definitions
func DefaultCatalog() *Catalog {
	hospital := hospitalFeatures()
	return &Catalog{
		bundles: map[Tier]Bundle{
			TierClinic: {
				Tier:     TierClinic,
				Features: clinicFeatures(),
				Text:     clinicText(),
			},
			TierHospital: {
				Tier:     TierHospital,
				Features: hospital,
				Text:     hospitalText(),
			},
			TierBigHospital: {
				Tier:     TierBigHospital,
				Features: hospital.AllEnabled(),
				Text:     hospitalText(),
			},
		},
	}
}

// Lookup returns the bundle for t. The returned bundle is a copy.
func (c *Catalog) Lookup(t Tier) (Bundle, error) {
	b, ok := c.bundles[t]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %q", ErrUnknownTier, t)
	}
	return Bundle{Tier: b.Tier, Features: b.Features.Clone(), Text: b.Text.Clone()}, nil
}

// Default returns the bundle of DefaultTier
func (c *Catalog) Default() Bundle {
	b, err := c.Lookup(DefaultTier)
	if err != nil {
		// Every catalog is built with all tiers present.
		panic(err)
	}
	return b
}

// Validate checks totality of every tier
func (c *Catalog) Validate() error {
	for _, t := range AllTiers {
		b, ok := c.bundles[t]
		if !ok {
			return fmt.Errorf("tier %s is not defined", t)
		}
		if err := b.Features.Validate(); err != nil {
			return fmt.Errorf("tier %s: %w", t, err)
		}
	}

	big := c.bundles[TierBigHospital].Features
	for _, f := range AllFeatures {
		if !big.Enabled(f) {
			return fmt.Errorf("tier %s must enable every feature, %s is off", TierBigHospital, f)
		}
	}
	for _, r := range AllRoles {
		if !big.RoleEnabled(r) {
			return fmt.Errorf("tier %s must enable every role, %s is off", TierBigHospital, r)
		}
	}
	return nil
}

func clinicFeatures() FeatureConfig {
	return FeatureConfig{
		Flags: map[Feature]bool{
			PatientManagement:   true,
			AppointmentSystem:   true,
			ClinicalInterface:   true,
			PrescriptionSystem:  true,
			VitalsTracking:      false,
			WardManagement:      false,
			BedManagement:       false,
			BillingSystem:       true,
			FinancialManagement: false,
			Analytics:           false,
			Reports:             false,
			SecurityLogs:        false,
			UserManagement:      true,
		},
		Roles: map[Role]bool{
			RoleAdmin:        true,
			RoleDoctor:       true,
			RoleNurse:        true,
			RolePatient:      true,
			RoleFinance:      false,
			RoleReceptionist: true,
			RoleTechnician:   false,
		},
	}
}

func hospitalFeatures() FeatureConfig {
	return FeatureConfig{
		Flags: map[Feature]bool{
			PatientManagement:   true,
			AppointmentSystem:   true,
			ClinicalInterface:   true,
			PrescriptionSystem:  true,
			VitalsTracking:      true,
			WardManagement:      true,
			BedManagement:       true,
			BillingSystem:       true,
			FinancialManagement: false,
			Analytics:           false,
			Reports:             true,
			SecurityLogs:        true,
			UserManagement:      true,
		},
		Roles: map[Role]bool{
			RoleAdmin:        true,
			RoleDoctor:       true,
			RoleNurse:        true,
			RolePatient:      true,
			RoleFinance:      true,
			RoleReceptionist: true,
			RoleTechnician:   false,
		},
	}
}
