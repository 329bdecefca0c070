package db

import (
	"embed"

	"github.com/azuldeco/azul-admin/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var requiredTables = []string{"users", "clients", "fabric_types", "documents", "document_items", "document_counters", "settings"}

// Migrate applies the schema. Versioned SQL migrations run on postgres when
// sqlMigrations is set; otherwise the models are auto-migrated.
func Migrate(conn *gorm.DB, driver, dsn string, sqlMigrations bool, l *log.Logger) error {
	if sqlMigrations && driver == "postgres" {
		l.Info("running sql migrations")
		if err := runSQLMigrations(ToURLDSN(NormalizeDSN(dsn))); err != nil {
			return errors.Wrap(err, "sql migrations")
		}
	} else {
		if err := AutoMigrate(conn); err != nil {
			return err
		}
	}
	for _, table := range requiredTables {
		if !conn.Migrator().HasTable(table) {
			return errors.Errorf("missing table after migration: %s", table)
		}
	}
	return nil
}

// AutoMigrate creates or updates every table from the models.
func AutoMigrate(conn *gorm.DB) error {
	for _, m := range models.All() {
		if err := conn.AutoMigrate(m); err != nil {
			return errors.Wrapf(err, "automigrate %T", m)
		}
	}
	return nil
}

func runSQLMigrations(url string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return errors.Wrap(err, "open embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return errors.Wrap(err, "init migrate")
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
