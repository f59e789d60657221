package sqlite

import (
	"embed"

	"github.com/pressly/goose/v3"

	"github.com/knownasnaffy/saldo/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date using the embedded migrations.
func (d *DB) Migrate() error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(logger.GetLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}

	return goose.Up(sqlDB, "migrations")
}
