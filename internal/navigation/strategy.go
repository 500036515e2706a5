// Package navigation turns a user role and the active tier configuration
// into the role's badge and ordered menu.
package navigation

import (
	"github.com/otcheredev/hospital-console/internal/features"
)

// IconRef names an icon in the UI icon set
type IconRef string

// MenuItem is one navigation entry. Slice order is display order.
type MenuItem struct {
	Icon  IconRef `json:"icon" yaml:"icon"`
	Label string  `json:"label" yaml:"label"`
	Path  string  `json:"path" yaml:"path"`
}

// RoleConfig is the navigation descriptor of a role. It is derived on
// every call and never stored.
type RoleConfig struct {
	Role      features.Role `json:"role" yaml:"role"`
	Label     string        `json:"label" yaml:"label"`
	Color     string        `json:"color" yaml:"color"`
	Icon      IconRef       `json:"icon" yaml:"icon"`
	MenuItems []MenuItem    `json:"menuItems" yaml:"menuItems"`
}

// Strategy builds the menu of one role
type Strategy interface {
	Role() features.Role
	Build(fc features.FeatureConfig, tc features.TextConfig) RoleConfig
}

// entry is one conditional menu slot. An empty requires means the item is
// always shown. When textKey is set the label comes from the tenant copy,
// with label as the fallback; otherwise label is fixed by the strategy.
type entry struct {
	requires features.Feature
	icon     IconRef
	path     string
	textKey  string
	label    string
}

// menuStrategy is the shape shared by every role strategy: a badge and a
// fixed ordered sequence of entries.
type menuStrategy struct {
	role    features.Role
	color   string
	icon    IconRef
	entries []entry
}

func (s *menuStrategy) Role() features.Role {
	return s.role
}

func (s *menuStrategy) Build(fc features.FeatureConfig, tc features.TextConfig) RoleConfig {
	items := make([]MenuItem, 0, len(s.entries))
	for _, e := range s.entries {
		if e.requires != "" && !fc.Enabled(e.requires) {
			continue
		}
		label := e.label
		if e.textKey != "" {
			label = tc.NavLabel(e.textKey, e.label)
		}
		items = append(items, MenuItem{Icon: e.icon, Label: label, Path: e.path})
	}

	return RoleConfig{
		Role:      s.role,
		Label:     tc.RoleLabel(s.role),
		Color:     s.color,
		Icon:      s.icon,
		MenuItems: items,
	}
}
