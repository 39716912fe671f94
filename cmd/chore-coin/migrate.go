package main

import (
	"fmt"

	"chore-coin-go/internal/app"
	"chore-coin-go/internal/db"
	"chore-coin-go/pkg/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{db.MigrateUp, db.MigrateDown, db.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := db.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}
			if err := app.Migrate(cmd.Context(), log, command); err != nil {
				return fmt.Errorf("migrate %s: %w", command, err)
			}
			log.Info("db: migrate finished", "command", command)
			return nil
		},
	}
}
