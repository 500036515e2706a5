package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hospital-console",
		Short:         "Multi-tenant hospital management console backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(menuCmd())
	rootCmd.AddCommand(tiersCmd())
	rootCmd.AddCommand(tenantsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
