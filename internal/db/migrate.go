package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// Migrate applies the embedded schema migrations. command is one of
// MigrateUp, MigrateDown or MigrateStatus.
func Migrate(ctx context.Context, gormDB *gorm.DB, command string) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case MigrateUp, "":
		err = goose.UpContext(ctx, sqlDB, migrationsDir)
	case MigrateDown:
		err = goose.DownContext(ctx, sqlDB, migrationsDir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, sqlDB, migrationsDir)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
