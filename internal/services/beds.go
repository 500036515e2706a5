package services

import (
	"context"
	"net/url"

	"github.com/otcheredev/hospital-console/internal/models"
)

// BedService manages ward beds
type BedService struct {
	*Resource[models.Bed, models.BedInput, models.BedPatch]
}

// NewBedService creates a new bed service
func NewBedService(api Requester) *BedService {
	return &BedService{
		Resource: NewResource[models.Bed, models.BedInput, models.BedPatch](api, ResourceBeds),
	}
}

// GetAvailable returns beds that can take a patient
func (s *BedService) GetAvailable(ctx context.Context) ([]models.Bed, error) {
	return s.list(ctx, "", url.Values{"status": {string(models.BedAvailable)}})
}

// Assign places a patient in a bed
func (s *BedService) Assign(ctx context.Context, bedID, patientID string) (*models.Bed, models.Mutation, error) {
	status := models.BedOccupied
	bed, m, err := s.Update(ctx, bedID, models.BedPatch{Status: &status, PatientID: &patientID})
	if err != nil {
		return nil, m, err
	}
	m.Invalidates = append(m.Invalidates, ResourcePatients)
	return bed, m, nil
}

// Release frees a bed
func (s *BedService) Release(ctx context.Context, bedID string) (*models.Bed, models.Mutation, error) {
	status := models.BedAvailable
	empty := ""
	bed, m, err := s.Update(ctx, bedID, models.BedPatch{Status: &status, PatientID: &empty})
	if err != nil {
		return nil, m, err
	}
	m.Invalidates = append(m.Invalidates, ResourcePatients)
	return bed, m, nil
}
