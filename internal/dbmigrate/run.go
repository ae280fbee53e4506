package dbmigrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/fdg312/menu-board/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Commands lists the goose commands exposed by cmd/migrate.
var Commands = []string{"up", "down", "status", "version"}

// Run applies a goose command against dbURL using the embedded migrations.
func Run(ctx context.Context, command string, dbURL string) error {
	return run(ctx, command, dbURL, migrations.FS)
}

func run(ctx context.Context, command string, dbURL string, migrationsFS fs.FS) error {
	if dbURL == "" {
		return fmt.Errorf("database URL is empty")
	}
	if !IsSupported(command) {
		return fmt.Errorf("unsupported migrate command %q", command)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	return nil
}

func IsSupported(command string) bool {
	for _, c := range Commands {
		if c == command {
			return true
		}
	}
	return false
}
