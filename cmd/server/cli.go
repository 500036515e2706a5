package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/otcheredev/hospital-console/internal/config"
	"github.com/otcheredev/hospital-console/internal/database"
	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/navigation"
	"github.com/otcheredev/hospital-console/internal/repository"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the navigation menu a role gets under a tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")
			tier, _ := cmd.Flags().GetString("tier")
			file, _ := cmd.Flags().GetString("tier-file")
			output, _ := cmd.Flags().GetString("output")

			catalog, err := loadCatalog(file)
			if err != nil {
				return err
			}
			return renderMenu(cmd.OutOrStdout(), catalog, role, tier, output)
		},
	}
	cmd.Flags().String("role", "", "Role to build the menu for")
	cmd.Flags().String("tier", string(features.DefaultTier), "Tier: clinic, hospital or big_hospital")
	cmd.Flags().String("tier-file", "", "YAML file overriding the built-in tiers")
	cmd.Flags().StringP("output", "o", "yaml", "Output format: yaml or json")
	cmd.MarkFlagRequired("role")
	return cmd
}

func renderMenu(w io.Writer, catalog *features.Catalog, role, tier, output string) error {
	t, err := features.ParseTier(tier)
	if err != nil {
		return err
	}
	bundle, err := catalog.Lookup(t)
	if err != nil {
		return err
	}
	cfg, err := navigation.Resolve(role, bundle.Features, bundle.Text)
	if err != nil {
		return err
	}
	return encode(w, output, cfg)
}

func tiersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Inspect and validate tier definitions",
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a tier file defines every flag and role",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			catalog, err := features.LoadCatalog(file)
			if err != nil {
				return err
			}
			if err := catalog.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", file)
			return nil
		},
	}
	validateCmd.Flags().String("file", "", "Tier file to validate")
	validateCmd.MarkFlagRequired("file")
	cmd.AddCommand(validateCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the feature matrix of a tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, _ := cmd.Flags().GetString("tier")
			file, _ := cmd.Flags().GetString("tier-file")
			output, _ := cmd.Flags().GetString("output")

			catalog, err := loadCatalog(file)
			if err != nil {
				return err
			}
			return renderTier(cmd.OutOrStdout(), catalog, tier, output)
		},
	}
	showCmd.Flags().String("tier", string(features.DefaultTier), "Tier to show")
	showCmd.Flags().String("tier-file", "", "YAML file overriding the built-in tiers")
	showCmd.Flags().StringP("output", "o", "yaml", "Output format: yaml or json")
	cmd.AddCommand(showCmd)

	return cmd
}

func renderTier(w io.Writer, catalog *features.Catalog, tier, output string) error {
	t, err := features.ParseTier(tier)
	if err != nil {
		return err
	}
	bundle, err := catalog.Lookup(t)
	if err != nil {
		return err
	}
	return encode(w, output, bundle.Features)
}

func tenantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Manage the tenant domain directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active tenants and their domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := tenantRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			tenants, err := repo.ListActive(cmd.Context())
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), "yaml", tenants)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed-demo",
		Short: "Insert the demo tenants into the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := tenantRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repo.Seed(cmd.Context(), runtimeconfig.DemoTenants()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "demo tenants seeded")
			return nil
		},
	})

	return cmd
}

func tenantRepository() (*repository.TenantRepository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(databaseConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	return repository.NewTenantRepository(db), func() { database.Close(db) }, nil
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
