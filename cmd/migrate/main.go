package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/storerate/storerate-backend/pkg/config"
	"github.com/storerate/storerate-backend/pkg/db"
	"github.com/storerate/storerate-backend/pkg/logger"
	"github.com/storerate/storerate-backend/pkg/migrate"
)

type migrateFlags struct {
	cmd     string
	dir     string
	name    string
	version string
}

func parseFlags() migrateFlags {
	var f migrateFlags
	flag.StringVar(&f.cmd, "cmd", "up", "migration command: up|down|status|version|create|validate")
	flag.StringVar(&f.dir, "dir", migrate.DefaultDir, "goose migrations directory")
	flag.StringVar(&f.name, "name", "", "migration name (for create)")
	flag.StringVar(&f.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()
	return f
}

func main() {
	_ = godotenv.Load()
	f := parseFlags()

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(f migrateFlags) error {
	// create and validate only touch the filesystem, no database needed
	switch f.cmd {
	case "create":
		if f.name == "" {
			return fmt.Errorf("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(f.dir, f.name)
		if err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		fmt.Println("created migration:", path)
		return nil

	case "validate":
		if err := migrate.ValidateDir(f.dir); err != nil {
			return fmt.Errorf("validate migrations: %w", err)
		}
		fmt.Println("migration validation passed")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": f.cmd,
		"dir": f.dir,
	})

	sqlDB, closeDB, err := openDB(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeDB()

	switch f.cmd {
	case "up", "down", "status":
		if err := migrate.Run(ctx, sqlDB, f.dir, f.cmd); err != nil {
			return fmt.Errorf("goose %s: %w", f.cmd, err)
		}
		return nil

	case "version":
		if f.version == "" {
			return fmt.Errorf("missing -version for version command")
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, f.dir, f.version); err != nil {
			return fmt.Errorf("goose migrate to version %s: %w", f.version, err)
		}
		return nil

	default:
		return fmt.Errorf("unknown -cmd value %q", f.cmd)
	}
}

func openDB(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*sql.DB, func(), error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		dbClient.Close()
		return nil, nil, fmt.Errorf("unwrap sql database: %w", err)
	}
	return sqlDB, func() { dbClient.Close() }, nil
}
