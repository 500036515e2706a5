package navigation

import "github.com/otcheredev/hospital-console/internal/features"

// AdminStrategy lists user management, analytics, security logs, reports
func AdminStrategy() Strategy {
	return &menuStrategy{
		role:  features.RoleAdmin,
		color: "bg-red-100 text-red-800",
		icon:  "shield",
		entries: []entry{
			{icon: "users", path: "/users", label: "User Management"},
			{requires: features.Analytics, icon: "bar-chart", path: "/analytics", textKey: features.NavAnalytics, label: "Analytics"},
			{requires: features.SecurityLogs, icon: "shield", path: "/security", textKey: features.NavSecurity, label: "Security Logs"},
			{requires: features.Reports, icon: "file-text", path: "/reports", textKey: features.NavReports, label: "Reports"},
		},
	}
}

// DoctorStrategy lists patients, appointments, clinical, prescriptions, security logs
func DoctorStrategy() Strategy {
	return &menuStrategy{
		role:  features.RoleDoctor,
		color: "bg-blue-100 text-blue-800",
		icon:  "stethoscope",
		entries: []entry{
			{requires: features.PatientManagement, icon: "users", path: "/patients", textKey: features.NavPatients, label: "Patients"},
			{requires: features.AppointmentSystem, icon: "calendar", path: "/appointments", textKey: features.NavAppointments, label: "Appointments"},
			{requires: features.ClinicalInterface, icon: "clipboard", path: "/clinical", textKey: features.NavClinical, label: "Clinical"},
			{requires: features.PrescriptionSystem, icon: "pill", path: "/prescriptions", textKey: features.NavPrescriptions, label: "Prescriptions"},
			{requires: features.SecurityLogs, icon: "shield", path: "/security", textKey: features.NavSecurity, label: "Security Logs"},
		},
	}
}

// NurseStrategy lists patient care, vitals, wards, shift schedule
func NurseStrategy() Strategy {
	return &menuStrategy{
		role:  features.RoleNurse,
		color: "bg-green-100 text-green-800",
		icon:  "heart",
		entries: []entry{
			{requires: features.PatientManagement, icon: "users", path: "/patients", label: "Patient Care"},
			{requires: features.VitalsTracking, icon: "activity", path: "/clinical", label: "Vital Signs"},
			{requires: features.WardManagement, icon: "bed", path: "/wards", label: "Ward Management"},
			{icon: "clock", path: "/schedule", label: "Shift Schedule"},
		},
	}
}

// PatientStrategy lists appointments, records, prescriptions, profile
func PatientStrategy() Strategy {
	return &menuStrategy{
		role:  features.RolePatient,
		color: "bg-purple-100 text-purple-800",
		icon:  "user",
		entries: []entry{
			{requires: features.AppointmentSystem, icon: "calendar", path: "/appointments", label: "My Appointments"},
			{requires: features.ClinicalInterface, icon: "file-text", path: "/clinical", label: "Medical Records"},
			{requires: features.PrescriptionSystem, icon: "pill", path: "/prescriptions", label: "My Prescriptions"},
			{icon: "user", path: "/profile", label: "My Profile"},
		},
	}
}

// FinanceStrategy lists analytics, billing, patient accounts
func FinanceStrategy() Strategy {
	return &menuStrategy{
		role:  features.RoleFinance,
		color: "bg-yellow-100 text-yellow-800",
		icon:  "dollar-sign",
		entries: []entry{
			{requires: features.Analytics, icon: "bar-chart", path: "/analytics", textKey: features.NavAnalytics, label: "Analytics"},
			{requires: features.BillingSystem, icon: "credit-card", path: "/billing", textKey: features.NavBilling, label: "Billing"},
			{icon: "wallet", path: "/accounts", label: "Patient Accounts"},
		},
	}
}

// ReceptionistStrategy lists patients, appointments, billing
func ReceptionistStrategy() Strategy {
	return &menuStrategy{
		role:  features.RoleReceptionist,
		color: "bg-indigo-100 text-indigo-800",
		icon:  "clipboard",
		entries: []entry{
			{requires: features.PatientManagement, icon: "users", path: "/patients", textKey: features.NavPatients, label: "Patients"},
			{requires: features.AppointmentSystem, icon: "calendar", path: "/appointments", textKey: features.NavAppointments, label: "Appointments"},
			{requires: features.FinancialManagement, icon: "credit-card", path: "/billing", textKey: features.NavBilling, label: "Billing"},
		},
	}
}

// TechnicianStrategy lists patients, appointments, clinical
func TechnicianStrategy() Strategy {
	return &menuStrategy{
		role:  features.RoleTechnician,
		color: "bg-orange-100 text-orange-800",
		icon:  "flask",
		entries: []entry{
			{requires: features.PatientManagement, icon: "users", path: "/patients", textKey: features.NavPatients, label: "Patients"},
			{requires: features.AppointmentSystem, icon: "calendar", path: "/appointments", textKey: features.NavAppointments, label: "Appointments"},
			{requires: features.ClinicalInterface, icon: "clipboard", path: "/clinical", textKey: features.NavClinical, label: "Clinical"},
		},
	}
}
