package navigation

import (
	"errors"
	"fmt"

	"github.com/otcheredev/hospital-console/internal/features"
)

var (
	// ErrUnknownRole is returned for a role outside the known set
	ErrUnknownRole = errors.New("unknown role")
	// ErrRoleDisabled is returned when the tier does not enable the role
	ErrRoleDisabled = errors.New("role not enabled for tier")
)

// Registry dispatches a role to its strategy
type Registry struct {
	strategies map[features.Role]Strategy
}

// NewRegistry builds a registry from strategies. It panics unless every
// declared role has exactly one strategy.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[features.Role]Strategy, len(strategies))}
	for _, s := range strategies {
		if _, dup := r.strategies[s.Role()]; dup {
			panic(fmt.Sprintf("navigation: duplicate strategy for role %s", s.Role()))
		}
		r.strategies[s.Role()] = s
	}
	for _, role := range features.AllRoles {
		if _, ok := r.strategies[role]; !ok {
			panic(fmt.Sprintf("navigation: no strategy for role %s", role))
		}
	}
	return r
}

// DefaultRegistry holds the built-in strategy of every role
func DefaultRegistry() *Registry {
	return NewRegistry(
		AdminStrategy(),
		DoctorStrategy(),
		NurseStrategy(),
		PatientStrategy(),
		FinanceStrategy(),
		ReceptionistStrategy(),
		TechnicianStrategy(),
	)
}

// Strategy returns the strategy of role
func (r *Registry) Strategy(role string) (Strategy, error) {
	parsed, ok := features.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	s, ok := r.strategies[parsed]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return s, nil
}

// Resolve builds the RoleConfig of role under the given tier configuration.
// Nothing is cached; a flag change shows up on the next call.
func (r *Registry) Resolve(role string, fc features.FeatureConfig, tc features.TextConfig) (*RoleConfig, error) {
	s, err := r.Strategy(role)
	if err != nil {
		return nil, err
	}
	if !fc.RoleEnabled(s.Role()) {
		return nil, fmt.Errorf("%w: %s", ErrRoleDisabled, s.Role())
	}
	cfg := s.Build(fc, tc)
	return &cfg, nil
}

var defaultRegistry = DefaultRegistry()

// Resolve uses the built-in strategies
func Resolve(role string, fc features.FeatureConfig, tc features.TextConfig) (*RoleConfig, error) {
	return defaultRegistry.Resolve(role, fc, tc)
}
