package database

import (
	"errors"
	"fmt"
	"time"

	"budgetly/internal/config"
	"budgetly/internal/logger"
	"budgetly/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table in dependency order. SQLite databases are
// created from it; PostgreSQL uses the SQL files under migrations/.
var Models = []interface{}{
	&models.Category{},
	&models.BudgetMonth{},
	&models.BudgetItem{},
	&models.AuditLog{},
}

// Manager handles database operations
type Manager struct {
	db  *gorm.DB
	cfg config.DatabaseConfig
}

// NewManager opens the configured database.
func NewManager(cfg config.DatabaseConfig) (*Manager, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err = gorm.Open(sqlite.Open(SQLiteDSN(cfg.SQLitePath)), gormCfg)
	default:
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // Required for Supabase Supavisor; harmless for direct connections
		}), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent requests.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, cfg: cfg}, nil
}

// SQLiteDSN enables foreign keys so item cascades work on SQLite.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// RunMigrations applies pending SQL migrations (PostgreSQL) or creates the
// schema from the models (SQLite).
func (m *Manager) RunMigrations() error {
	log := logger.Named("database")

	if m.cfg.Driver == config.DriverSQLite {
		log.Info("Creating SQLite schema...")
		if err := m.db.AutoMigrate(Models...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	log.Infof("Running database migrations from %s...", m.cfg.MigrationsPath)

	mig, err := NewMigrator(m.cfg)
	if err != nil {
		return err
	}
	defer CloseMigrator(mig)

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// NewMigrator opens the SQL migration source against a PostgreSQL database.
func NewMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, error) {
	if cfg.Driver != config.DriverPostgres {
		return nil, fmt.Errorf("SQL migrations target PostgreSQL; the %s schema is created from the models", cfg.Driver)
	}
	mig, err := migrate.New("file://"+cfg.MigrationsPath, cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// CloseMigrator releases both ends of mig, logging failures.
func CloseMigrator(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Named("migrate").Warnw("source close failed", "error", srcErr)
	}
	if dbErr != nil {
		logger.Named("migrate").Warnw("database close failed", "error", dbErr)
	}
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
