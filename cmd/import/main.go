package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"budgetly/internal/calendar"
	"budgetly/internal/client"
	"budgetly/internal/config"
	"budgetly/internal/database"
	"budgetly/internal/encoding"
	"budgetly/internal/logger"
	"budgetly/internal/services"
)

const requestTimeout = 2 * time.Minute

type options struct {
	file   string
	month  string
	owner  string
	server string
	apiKey string
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	var opts options
	flag.StringVar(&opts.file, "file", "", "JSON file with records (array or {\"records\": [...]})")
	flag.StringVar(&opts.month, "month", "", "target month, e.g. 2024-03 or \"March 2024\" (default: current month)")
	flag.StringVar(&opts.owner, "owner", "", "budget owner (empty for the single-user timeline)")
	flag.StringVar(&opts.server, "server", "", "post to a running server's pipeline API instead of the database")
	flag.StringVar(&opts.apiKey, "api-key", os.Getenv("IMPORT_API_KEY"), "pipeline API key (with -server)")
	flag.Parse()

	if err := run(opts); err != nil {
		logger.Get().Fatalf("Import error: %v", err)
	}
}

func run(opts options) error {
	log := logger.Named("import")

	if opts.file == "" {
		return errors.New("usage: import -file data.json [-month 2024-03] [-owner id] [-server URL]")
	}

	target := calendar.Of(time.Now())
	if opts.month != "" {
		ym, ok := calendar.ParseMonthString(opts.month)
		if !ok {
			return fmt.Errorf("unrecognized month %q", opts.month)
		}
		target = ym
	}

	records, charset, err := readRecords(opts.file)
	if err != nil {
		return err
	}
	log.Infow("records loaded", "file", opts.file, "charset", charset, "records", len(records), "month", target.Key())

	var result *services.ImportResult
	if opts.server != "" {
		result, err = importRemote(opts, target, records)
	} else {
		result, err = importLocal(opts, target, records)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func readRecords(path string) ([]services.ImportRecord, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, charset, err := encoding.NewUTF8Reader(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	records, err := services.DecodeImportRecords(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, charset, nil
}

func importRemote(opts options, target calendar.YearMonth, records []services.ImportRecord) (*services.ImportResult, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	c := client.NewPipelineClient(opts.server, opts.apiKey, opts.owner, nil)
	return c.Import(ctx, target, records)
}

func importLocal(opts options, target calendar.YearMonth, records []services.ImportRecord) (*services.ImportResult, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	if err := services.NewCategoryService(db).EnsureDefaults(); err != nil {
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}
	return services.NewImportService(db, cfg.ImportMaxRecords).ImportBatch(opts.owner, target, records)
}
