package services

import (
	"context"

	"github.com/otcheredev/hospital-console/internal/models"
)

// SettingsService reads and patches the organization settings document.
// It is a singleton resource, so only get and update apply.
type SettingsService struct {
	api Requester
}

// NewSettingsService creates a new settings service
func NewSettingsService(api Requester) *SettingsService {
	return &SettingsService{api: api}
}

// Get returns the settings document
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	var out models.Settings
	if err := s.api.Get(ctx, "/"+ResourceSettings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches the settings document
func (s *SettingsService) Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, models.Mutation, error) {
	var out models.Settings
	if err := s.api.Put(ctx, "/"+ResourceSettings, patch, &out); err != nil {
		return nil, models.Mutation{}, err
	}
	return &out, models.Mutation{
		Resource:    ResourceSettings,
		ID:          out.OrganizationID,
		Invalidates: []string{ResourceSettings},
	}, nil
}
