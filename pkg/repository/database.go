package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kutbudev/contactbook/pkg/config"
	"github.com/kutbudev/contactbook/pkg/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database owns the gorm connection pool.
type Database struct {
	DB *gorm.DB
}

// Options tunes Open. Zero values keep database/sql defaults.
type Options struct {
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
	LogLevel     string
	Log          *logrus.Logger
}

// NewDatabase creates a new postgres connection from configuration.
func NewDatabase(cfg config.DatabaseConfig, log *logrus.Logger) (*Database, error) {
	return Open(postgres.Open(cfg.GetDatabaseDSN()), Options{
		MaxIdleConns: cfg.MaxIdleConns,
		MaxOpenConns: cfg.MaxOpenConns,
		AutoMigrate:  cfg.AutoMigrate,
		LogLevel:     cfg.LogLevel,
		Log:          log,
	})
}

// Open connects through any gorm dialector. Tests use it with sqlite.
func Open(dialector gorm.Dialector, opts Options) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger:         newGormLogger(opts.Log, opts.LogLevel),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	d := &Database{DB: db}
	if opts.AutoMigrate {
		if err := d.AutoMigrate(); err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}
	return d, nil
}

// AutoMigrate creates or updates the schema from the models. Production schemas are
// managed by the versioned migrations instead.
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.Contact{},
		&models.Group{},
		&models.RelationContactGroup{},
	)
}

// Close closes the connection pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health pings the database
func (d *Database) Health(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func newGormLogger(log *logrus.Logger, level string) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	var logLevel logger.LogLevel
	switch level {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "info", "debug":
		logLevel = logger.Info
	default:
		logLevel = logger.Warn
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
