package features

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type tierFile struct {
	Tiers map[string]tierDefinition `yaml:"tiers"`
}

type tierDefinition struct {
	Features map[Feature]bool `yaml:"features"`
	Roles    map[Role]bool    `yaml:"roles"`
	Text     *TextConfig      `yaml:"text"`
}

// LoadCatalog reads tier definitions from a YAML file on top of the built-in
// catalog. A tier present in the file replaces the built-in feature matrix
// entirely, so it must list every flag and role. Unless the file defines
// big_hospital, it is re-derived from hospital; a big_hospital entry must
// enable every flag and role.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog is LoadCatalog over an in-memory document
func ParseCatalog(data []byte) (*Catalog, error) {
	var file tierFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tier file: %w", err)
	}

	catalog := DefaultCatalog()
	for name, def := range file.Tiers {
		tier, err := ParseTier(name)
		if err != nil {
			return nil, err
		}

		cfg := FeatureConfig{Flags: def.Features, Roles: def.Roles}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("tier %s: %w", tier, err)
		}

		bundle := catalog.bundles[tier]
		bundle.Features = cfg
		if def.Text != nil {
			bundle.Text = mergeText(bundle.Text, *def.Text)
		}
		catalog.bundles[tier] = bundle
	}

	if _, ok := file.Tiers[string(TierBigHospital)]; !ok {
		big := catalog.bundles[TierBigHospital]
		big.Features = catalog.bundles[TierHospital].Features.AllEnabled()
		catalog.bundles[TierBigHospital] = big
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// mergeText overlays the entries of override onto base
func mergeText(base, override TextConfig) TextConfig {
	out := base.Clone()
	for k, v := range override.Roles {
		out.Roles[k] = v
	}
	for k, v := range override.Navigation {
		out.Navigation[k] = v
	}
	for k, v := range override.Features {
		out.Features[k] = v
	}
	for k, v := range override.Buttons {
		out.Buttons[k] = v
	}
	for k, v := range override.Messages {
		out.Messages[k] = v
	}
	return out
}
