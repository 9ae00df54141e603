package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shashiranjanraj/shopservice/app/repositories"
	_ "github.com/shashiranjanraj/shopservice/database/migrations"
	"github.com/shashiranjanraj/shopservice/database/seeders"
	"github.com/shashiranjanraj/shopservice/internal/kernel"
	"github.com/shashiranjanraj/shopservice/pkg/logger"
	"github.com/shashiranjanraj/shopservice/pkg/migration"
)

// Migrate applies pending migrations and reports each one to out.
func (a *Application) Migrate(ctx context.Context, out io.Writer) error {
	applied, err := migration.New(a.DB).Run(ctx)
	for _, name := range applied {
		fmt.Fprintf(out, "Migrated:  %s\n", name)
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(out, "Nothing to migrate.")
	}
	return nil
}

// Rollback reverts the last migration batch.
func (a *Application) Rollback(ctx context.Context, out io.Writer) error {
	reverted, err := migration.New(a.DB).Rollback(ctx)
	for _, name := range reverted {
		fmt.Fprintf(out, "Rolled back:  %s\n", name)
	}
	if err != nil {
		return err
	}
	if len(reverted) == 0 {
		fmt.Fprintln(out, "Nothing to roll back.")
	}
	return nil
}

// MigrateStatus prints one line per registered migration.
func (a *Application) MigrateStatus(ctx context.Context, out io.Writer) error {
	rows, err := migration.New(a.DB).Status(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
	for _, row := range rows {
		status, batch := "Pending", "-"
		if row.Ran {
			status, batch = "Ran", fmt.Sprint(row.Batch)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.Name, status, batch)
	}
	return w.Flush()
}

// Seed runs every registered seeder, then drops cached lists so a running
// server sees the new rows.
func (a *Application) Seed(ctx context.Context, out io.Writer) error {
	ran, err := seeders.RunAll(ctx, a.DB)
	for _, name := range ran {
		fmt.Fprintf(out, "Seeded:  %s\n", name)
	}
	if len(ran) > 0 {
		if ferr := repositories.NewShopRepository(a.ORM).ForgetCached(ctx); ferr != nil {
			logger.WithCtx(ctx).Warn("seed: cache invalidation failed", "error", ferr)
		}
	}
	if err != nil {
		return err
	}
	if len(ran) == 0 {
		fmt.Fprintln(out, "No seeders registered.")
	}
	return nil
}

// RouteList prints every HTTP route. It needs no database.
func RouteList(out io.Writer) error {
	k := kernel.NewHTTPKernel(kernel.Options{})
	defer k.Close()

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	for _, ri := range k.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
