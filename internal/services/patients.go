package services

import (
	"context"
	"net/url"

	"github.com/otcheredev/hospital-console/internal/models"
)

const (
	ResourcePatients      = "patients"
	ResourceAppointments  = "appointments"
	ResourceBeds          = "beds"
	ResourcePrescriptions = "prescriptions"
	ResourceUsers         = "users"
	ResourceAuditLogs     = "audit-logs"
	ResourceSettings      = "settings"
)

// PatientService manages patient records
type PatientService struct {
	*Resource[models.Patient, models.PatientInput, models.PatientPatch]
}

// NewPatientService creates a new patient service. Appointment and bed
// views show patient names, so they go stale on patient writes.
func NewPatientService(api Requester) *PatientService {
	return &PatientService{
		Resource: NewResource[models.Patient, models.PatientInput, models.PatientPatch](
			api, ResourcePatients, ResourceAppointments, ResourceBeds),
	}
}

// Search finds patients whose name, phone or email matches query
func (s *PatientService) Search(ctx context.Context, query string) ([]models.Patient, error) {
	return s.list(ctx, "/search", url.Values{"q": {query}})
}
