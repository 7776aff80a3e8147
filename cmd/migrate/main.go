// Command migrate manages the PostgreSQL schema.
//
//	migrate up            apply every pending migration
//	migrate down [N]      roll back N migrations (default 1)
//	migrate goto V        move to version V
//	migrate force V       mark version V clean after a failed run
//	migrate version       print the current version
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"budgetly/internal/config"
	"budgetly/internal/database"
	"budgetly/internal/logger"
)

const usage = "usage: migrate <up|down [N]|goto V|force V|version>"

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Named("migrate").Fatalw("migration failed", "error", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	mig, err := database.NewMigrator(cfg.DB)
	if err != nil {
		return err
	}
	defer database.CloseMigrator(mig)

	log := logger.Named("migrate")
	switch args[0] {
	case "up":
		err = ignoreNoChange(mig.Up())
	case "down":
		steps := 1
		if len(args) > 1 {
			if steps, err = numberArg(args[1]); err != nil {
				return err
			}
		}
		err = ignoreNoChange(mig.Steps(-steps))
	case "goto", "force":
		if len(args) < 2 {
			return errors.New(usage)
		}
		v, convErr := numberArg(args[1])
		if convErr != nil {
			return convErr
		}
		if args[0] == "goto" {
			err = ignoreNoChange(mig.Migrate(uint(v)))
		} else {
			err = mig.Force(v)
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q; %s", args[0], usage)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Infow("schema is empty", "command", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	log.Infow("schema version", "command", args[0], "version", version, "dirty", dirty)
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func numberArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}
