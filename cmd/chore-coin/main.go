package main

import (
	"os"

	"chore-coin-go/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	log := logger.NewFromEnv()
	if err := newRootCmd(log).Execute(); err != nil {
		log.Critical("app: command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(log logger.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chore-coin",
		Short: "Chore points ledger and reward API",
		Long: `chore-coin serves the chore points API: children earn points for chores
and spend them on rewards, parents manage both behind a passcode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd(log))
	rootCmd.AddCommand(newMigrateCmd(log))

	return rootCmd
}
