package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/faturo-inc/faturo/internal/interfaces/cli/migrate"
	"github.com/faturo-inc/faturo/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "faturo",
		Short: "Faturo - subscription billing service",
		Long:  `Faturo runs recurring subscription billing: plan catalog, subscription lifecycle, charge dispatch and payment reconciliation.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
