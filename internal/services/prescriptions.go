package services

import (
	"context"
	"net/url"

	"github.com/otcheredev/hospital-console/internal/models"
)

// PrescriptionService manages prescriptions
type PrescriptionService struct {
	*Resource[models.Prescription, models.PrescriptionInput, models.PrescriptionPatch]
}

// NewPrescriptionService creates a new prescription service
func NewPrescriptionService(api Requester) *PrescriptionService {
	return &PrescriptionService{
		Resource: NewResource[models.Prescription, models.PrescriptionInput, models.PrescriptionPatch](
			api, ResourcePrescriptions),
	}
}

// GetByPatient returns the prescriptions of one patient
func (s *PrescriptionService) GetByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	return s.list(ctx, "", url.Values{"patientId": {patientID}})
}
