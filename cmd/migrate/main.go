// Command migrate applies the embedded schema migrations with the Atlas CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"ticket-allocator/internal/pkg/config"
	"ticket-allocator/migrations"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dsn        string
		atlasBin   string
		statusOnly bool
		timeout    time.Duration
	)

	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVar(&dsn, "dsn", "", "database URL (default: built from DB_* environment variables)")
	flagSet.StringVar(&atlasBin, "atlas", "atlas", "path to the atlas binary")
	flagSet.BoolVar(&statusOnly, "status", false, "print migration status without applying")
	flagSet.DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}
	if dsn == "" {
		var dbCfg config.DBConfig
		if err := envconfig.Process("", &dbCfg); err != nil {
			return fmt.Errorf("failed to process env config: %w", err)
		}
		dsn = dbCfg.BuildDSN()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(migrations.FS()))
	if err != nil {
		return fmt.Errorf("failed to prepare migration directory: %w", err)
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), atlasBin)
	if err != nil {
		return fmt.Errorf("failed to create atlas client: %w", err)
	}

	if statusOnly {
		status, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{URL: dsn})
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		slog.Info("Migration status", "status", status.Status, "current", status.Current, "next", status.Next, "pending", len(status.Pending))
		return nil
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: dsn})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	slog.Info("Migrations applied", "applied", len(res.Applied), "current", res.Current, "target", res.Target)
	return nil
}
