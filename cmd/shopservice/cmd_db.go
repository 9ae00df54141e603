package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopservice/pkg/app"
)

// withApp boots config and the database, plus whatever opts asks for; log
// sinks are not needed by maintenance commands.
func withApp(cmd *cobra.Command, opts app.BootOptions, fn func(a *app.Application, ctx context.Context, out io.Writer) error) error {
	ctx := cmd.Context()
	a, err := app.Boot(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a, ctx, cmd.OutOrStdout())
}

// shopservice migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, app.BootOptions{}, (*app.Application).Migrate)
	},
}

// shopservice migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:     "migrate:rollback",
	Aliases: []string{"migrate:down"},
	Short:   "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, app.BootOptions{}, (*app.Application).Rollback)
	},
}

// shopservice migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, app.BootOptions{}, (*app.Application).MigrateStatus)
	},
}

// shopservice seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo shops and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, app.BootOptions{Cache: true}, (*app.Application).Seed)
	},
}
