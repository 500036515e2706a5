package services

// Services bundles every domain service bound to one API session
type Services struct {
	Patients      *PatientService
	Appointments  *AppointmentService
	Beds          *BedService
	Prescriptions *PrescriptionService
	Users         *UserService
	Audit         *AuditService
	Settings      *SettingsService
}

// New builds the domain services over api
func New(api Requester) *Services {
	patients := NewPatientService(api)
	users := NewUserService(api)
	return &Services{
		Patients:      patients,
		Appointments:  NewAppointmentService(api, patients, users),
		Beds:          NewBedService(api),
		Prescriptions: NewPrescriptionService(api),
		Users:         users,
		Audit:         NewAuditService(api),
		Settings:      NewSettingsService(api),
	}
}
