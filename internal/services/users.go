package services

import (
	"context"
	"net/url"

	"github.com/otcheredev/hospital-console/internal/models"
)

// UserService manages user accounts
type UserService struct {
	*Resource[models.User, models.UserInput, models.UserPatch]
}

// NewUserService creates a new user service
func NewUserService(api Requester) *UserService {
	return &UserService{
		Resource: NewResource[models.User, models.UserInput, models.UserPatch](
			api, ResourceUsers, ResourceAppointments),
	}
}

// GetByRole returns the users holding role
func (s *UserService) GetByRole(ctx context.Context, role string) ([]models.User, error) {
	return s.list(ctx, "", url.Values{"role": {role}})
}
