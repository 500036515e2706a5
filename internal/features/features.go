// Package features declares which functional areas and roles each product
// tier enables, and the display copy that goes with them.
package features

import (
	"fmt"
	"sort"
	"strings"
)

// Feature names a functional area that can be switched on or off per tier
type Feature string

const (
	PatientManagement   Feature = "patientManagement"
	AppointmentSystem   Feature = "appointmentSystem"
	ClinicalInterface   Feature = "clinicalInterface"
	PrescriptionSystem  Feature = "prescriptionSystem"
	VitalsTracking      Feature = "vitalsTracking"
	WardManagement      Feature = "wardManagement"
	BedManagement       Feature = "bedManagement"
	BillingSystem       Feature = "billingSystem"
	FinancialManagement Feature = "financialManagement"
	Analytics           Feature = "analytics"
	Reports             Feature = "reports"
	SecurityLogs        Feature = "securityLogs"
	UserManagement      Feature = "userManagement"
)

// AllFeatures is the declared key set every tier must define
var AllFeatures = []Feature{
	PatientManagement,
	AppointmentSystem,
	ClinicalInterface,
	PrescriptionSystem,
	VitalsTracking,
	WardManagement,
	BedManagement,
	BillingSystem,
	FinancialManagement,
	Analytics,
	Reports,
	SecurityLogs,
	UserManagement,
}

// Role is a user role known to the console
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RolePatient      Role = "patient"
	RoleFinance      Role = "finance"
	RoleReceptionist Role = "receptionist"
	RoleTechnician   Role = "technician"
)

// AllRoles is the declared role key set every tier must define
var AllRoles = []Role{
	RoleAdmin,
	RoleDoctor,
	RoleNurse,
	RolePatient,
	RoleFinance,
	RoleReceptionist,
	RoleTechnician,
}

// ParseRole maps a role string onto the known set. Matching is case-insensitive.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// FeatureConfig is the enablement matrix of a single tier
type FeatureConfig struct {
	Flags map[Feature]bool `json:"features" yaml:"features"`
	Roles map[Role]bool    `json:"roles" yaml:"roles"`
}

// Enabled reports whether f is on. A missing flag is off.
func (c FeatureConfig) Enabled(f Feature) bool {
	return c.Flags[f]
}

// RoleEnabled reports whether r is on. A missing role is off.
func (c FeatureConfig) RoleEnabled(r Role) bool {
	return c.Roles[r]
}

// Validate checks that the config defines exactly the declared key set
func (c FeatureConfig) Validate() error {
	var problems []string

	for _, f := range AllFeatures {
		if _, ok := c.Flags[f]; !ok {
			problems = append(problems, "missing feature "+string(f))
		}
	}
	for f := range c.Flags {
		if !knownFeature(f) {
			problems = append(problems, "unknown feature "+string(f))
		}
	}
	for _, r := range AllRoles {
		if _, ok := c.Roles[r]; !ok {
			problems = append(problems, "missing role "+string(r))
		}
	}
	for r := range c.Roles {
		if !knownRole(r) {
			problems = append(problems, "unknown role "+string(r))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("incomplete feature config: %s", strings.Join(problems, ", "))
	}
	return nil
}

// Clone returns a deep copy
func (c FeatureConfig) Clone() FeatureConfig {
	out := FeatureConfig{
		Flags: make(map[Feature]bool, len(c.Flags)),
		Roles: make(map[Role]bool, len(c.Roles)),
	}
	for k, v := range c.Flags {
		out.Flags[k] = v
	}
	for k, v := range c.Roles {
		out.Roles[k] = v
	}
	return out
}

// AllEnabled returns a copy with every declared flag and role set to true
func (c FeatureConfig) AllEnabled() FeatureConfig {
	out := c.Clone()
	for _, f := range AllFeatures {
		out.Flags[f] = true
	}
	for _, r := range AllRoles {
		out.Roles[r] = true
	}
	return out
}

func knownFeature(f Feature) bool {
	for _, known := range AllFeatures {
		if f == known {
			return true
		}
	}
	return false
}

func knownRole(r Role) bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}
