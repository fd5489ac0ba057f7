package main

import (
	"os"

	"github.com/spf13/cobra"

	"stepsign/internal/interfaces/cli/migrate"
	"stepsign/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stepsign",
		Short: "stepsign - step tracking backend with token rewards",
		Long:  `stepsign records walking sessions from smart insoles and issues STEP token claims redeemable on the Sui ledger.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
