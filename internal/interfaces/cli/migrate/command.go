package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"stepsign/internal/infrastructure/config"
	"stepsign/internal/infrastructure/database"
	"stepsign/internal/infrastructure/migration"
	"stepsign/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run, roll back, and inspect database schema migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(r *migration.Runner) error {
				return r.Up(database.Get())
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(r *migration.Runner) error {
				return r.Down(database.Get())
			})
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(r *migration.Runner) error {
				return r.Status(database.Get())
			})
		},
	}
}

func withRunner(fn func(*migration.Runner) error) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	runner, err := migration.NewRunner(cfg.Database.Driver)
	if err != nil {
		return err
	}

	return fn(runner)
}
