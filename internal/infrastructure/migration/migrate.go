package migration

import (
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"stepsign/internal/shared/logger"
)

//go:embed scripts/sqlite/*.sql scripts/mysql/*.sql
var scriptsFS embed.FS

// Runner applies goose migrations embedded in the binary. Each supported
// dialect carries its own script set; the DDL is not portable across them.
type Runner struct {
	dialect    string
	scriptsDir string
	logger     logger.Interface
}

func NewRunner(driver string) (*Runner, error) {
	var dialect, scriptsDir string
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		dialect = "sqlite3"
		scriptsDir = "scripts/sqlite"
	case "mysql":
		dialect = "mysql"
		scriptsDir = "scripts/mysql"
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	return &Runner{
		dialect:    dialect,
		scriptsDir: scriptsDir,
		logger:     logger.NewLogger().With("component", "migration"),
	}, nil
}

func (r *Runner) Up(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(scriptsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(r.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, r.scriptsDir); err != nil {
		r.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	r.logger.Infow("migration completed",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

func (r *Runner) Down(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(scriptsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(r.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Down(sqlDB, r.scriptsDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	return nil
}

func (r *Runner) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(scriptsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(r.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(sqlDB, r.scriptsDir)
}
