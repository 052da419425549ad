// Package database opens the gorm connection for the configured SQL dialect
// and keeps the schema in sync with the models.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sealjuli/Library/pkg/config"
)

const (
	connectAttempts = 30
	connectBackoff  = 2 * time.Second
)

// Dialector returns the gorm dialector matching cfg.Dialect.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Dialect {
	case config.DialectPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DialectMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DialectSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", cfg.Dialect)
	}
}

// Open opens a gorm handle over dialector. Driver errors are translated to
// gorm's portable errors (gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated).
func Open(dialector gorm.Dialector, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(logger),
	})
	if err != nil {
		if db != nil {
			_ = Close(db)
		}
		return nil, err
	}

	// SQLite allows a single writer, and every connection to ":memory:"
	// opens a separate database. Foreign keys are off unless asked for.
	if dialector.Name() == config.DialectSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// Connect establishes a database connection with retries.
func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := connect(func() (*gorm.DB, error) {
		return Open(dialector, logger)
	}, connectAttempts, connectBackoff, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("connected to database",
		zap.String("dialect", cfg.Dialect), zap.String("host", cfg.Host))
	return db, nil
}

// connect calls open until it yields a handle that answers a ping. Handles
// that fail the ping are closed before the next attempt.
func connect(open func() (*gorm.DB, error), attempts int, backoff time.Duration, logger *zap.Logger) (*gorm.DB, error) {
	var err error
	for i := 0; i < attempts; i++ {
		var db *gorm.DB
		db, err = open()
		if err != nil {
			logger.Warn("failed to open database, retrying",
				zap.Error(err), zap.Duration("backoff", backoff))
			time.Sleep(backoff)
			continue
		}

		if err = ping(db); err == nil {
			return db, nil
		}

		if cerr := Close(db); cerr != nil {
			logger.Warn("failed to close database", zap.Error(cerr))
		}
		logger.Warn("failed to ping database, retrying",
			zap.Error(err), zap.Duration("backoff", backoff))
		time.Sleep(backoff)
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", attempts, err)
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
