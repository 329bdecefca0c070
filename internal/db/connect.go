// Package db opens the store, applies the schema and seeds reference data.
package db

import (
	"time"

	"github.com/azuldeco/azul-admin/internal/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const retryDelay = 2 * time.Second

// GormConfig returns the shared gorm settings. Unique violations are
// translated to gorm.ErrDuplicatedKey on both drivers.
func GormConfig(l *log.Logger, debug bool) *gorm.Config {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	var gl logger.Interface = logger.Default.LogMode(level)
	if l != nil {
		gl = logger.New(l, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		})
	}
	return &gorm.Config{Logger: gl, TranslateError: true}
}

// Connect opens the configured database, retrying while it comes up.
func Connect(cfg config.DatabaseConfig, l *log.Logger) (*gorm.DB, error) {
	dsn := cfg.ConnString()
	if dsn == "" {
		return nil, errors.New("database DSN is empty")
	}
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		dsn = NormalizeDSN(dsn)
		dialector = postgres.Open(dsn)
	}

	attempts := cfg.Retries
	if attempts < 1 {
		attempts = 1
	}
	var (
		conn *gorm.DB
		err  error
	)
	for i := 1; i <= attempts; i++ {
		conn, err = gorm.Open(dialector, GormConfig(l, cfg.Debug))
		if err == nil {
			err = conn.Exec("SELECT 1").Error
		}
		if err == nil {
			break
		}
		l.WithError(err).WithField("attempt", i).Warn("database not ready, retrying")
		if i < attempts {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "connect database after %d attempts", attempts)
	}
	if cfg.Driver == "sqlite" {
		if err := singleWriter(conn); err != nil {
			return nil, err
		}
	}
	l.WithFields(log.Fields{"driver": cfg.Driver, "dsn": MaskDSN(dsn)}).Info("database connected")
	return conn, nil
}

// OpenSQLite opens a sqlite database with the shared settings, mainly for tests.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(dsn), GormConfig(nil, false))
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	if err := singleWriter(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// singleWriter pins sqlite to one connection. sqlite allows a single writer,
// and a second pooled connection fails with "database is locked" instead of
// waiting, so transactions queue on the pool.
func singleWriter(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "sqlite pool")
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}
