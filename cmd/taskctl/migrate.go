package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smart-task-backend/internal/config"
	"smart-task-backend/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the task tables in the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		database, err := db.Connect(cmd.Context(), cfg.DBDriver, cfg.ConnString())
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Schema is up to date (%s)\n", database.Dialect.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
