package features

// Navigation keys shared by TextConfig.Navigation and the menu strategies
const (
	NavDashboard     = "dashboard"
	NavPatients      = "patients"
	NavAppointments  = "appointments"
	NavClinical      = "clinical"
	NavPrescriptions = "prescriptions"
	NavSecurity      = "security"
	NavAnalytics     = "analytics"
	NavReports       = "reports"
	NavBilling       = "billing"
	NavWards         = "wards"
	NavBeds          = "beds"
	NavUsers         = "users"
	NavSettings      = "settings"
)

// TextConfig is the tenant-facing copy. Its maps are keyed like
// FeatureConfig so the two can be zipped when building labels.
type TextConfig struct {
	Roles      map[Role]string    `json:"roles" yaml:"roles"`
	Navigation map[string]string  `json:"navigation" yaml:"navigation"`
	Features   map[Feature]string `json:"features" yaml:"features"`
	Buttons    map[string]string  `json:"buttons" yaml:"buttons"`
	Messages   map[string]string  `json:"messages" yaml:"messages"`
}

// NavLabel returns the navigation label for key, or fallback when the
// tenant copy does not define one.
func (t TextConfig) NavLabel(key, fallback string) string {
	if label, ok := t.Navigation[key]; ok && label != "" {
		return label
	}
	return fallback
}

// RoleLabel returns the display name of r
func (t TextConfig) RoleLabel(r Role) string {
	if label, ok := t.Roles[r]; ok && label != "" {
		return label
	}
	return string(r)
}

// Clone returns a deep copy
func (t TextConfig) Clone() TextConfig {
	out := TextConfig{
		Roles:      make(map[Role]string, len(t.Roles)),
		Navigation: copyStrings(t.Navigation),
		Features:   make(map[Feature]string, len(t.Features)),
		Buttons:    copyStrings(t.Buttons),
		Messages:   copyStrings(t.Messages),
	}
	for k, v := range t.Roles {
		out.Roles[k] = v
	}
	for k, v := range t.Features {
		out.Features[k] = v
	}
	return out
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func hospitalText() TextConfig {
	return TextConfig{
		Roles: map[Role]string{
			RoleAdmin:        "Administrator",
			RoleDoctor:       "Doctor",
			RoleNurse:        "Nurse",
			RolePatient:      "Patient",
			RoleFinance:      "Finance Officer",
			RoleReceptionist: "Receptionist",
			RoleTechnician:   "Lab Technician",
		},
		Navigation: map[string]string{
			NavDashboard:     "Dashboard",
			NavPatients:      "Patients",
			NavAppointments:  "Appointments",
			NavClinical:      "Clinical Records",
			NavPrescriptions: "Prescriptions",
			NavSecurity:      "Security Logs",
			NavAnalytics:     "Analytics",
			NavReports:       "Reports",
			NavBilling:       "Billing",
			NavWards:         "Wards",
			NavBeds:          "Bed Management",
			NavUsers:         "Staff",
			NavSettings:      "Settings",
		},
		Features: map[Feature]string{
			PatientManagement:   "Patient Management",
			AppointmentSystem:   "Appointment System",
			ClinicalInterface:   "Clinical Interface",
			PrescriptionSystem:  "Prescription System",
			VitalsTracking:      "Vitals Tracking",
			WardManagement:      "Ward Management",
			BedManagement:       "Bed Management",
			BillingSystem:       "Billing",
			FinancialManagement: "Financial Management",
			Analytics:           "Analytics",
			Reports:             "Reports",
			SecurityLogs:        "Security Logs",
			UserManagement:      "User Management",
		},
		Buttons: map[string]string{
			"add":    "Add",
			"edit":   "Edit",
			"delete": "Delete",
			"save":   "Save",
			"cancel": "Cancel",
			"logout": "Sign out",
		},
		Messages: map[string]string{
			"welcome":       "Welcome to the hospital console",
			"loadFailed":    "Could not load data",
			"saveFailed":    "Could not save changes",
			"saveSucceeded": "Changes saved",
			"forbidden":     "You do not have access to this page",
		},
	}
}

func clinicText() TextConfig {
	t := hospitalText()
	t.Roles[RoleAdmin] = "Clinic Manager"
	t.Roles[RoleTechnician] = "Technician"
	t.Navigation[NavPatients] = "Patients"
	t.Navigation[NavAppointments] = "Visits"
	t.Navigation[NavClinical] = "Consultations"
	t.Navigation[NavUsers] = "Team"
	t.Messages["welcome"] = "Welcome to the clinic console"
	return t
}
