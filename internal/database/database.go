package database

import (
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema_sqlite.sql
var schemaSQLite string

//go:embed schema_postgres.sql
var schemaPostgres string

// NewConnection opens the database behind the given driver ("sqlite3" or
// "postgres") and runs the idempotent bootstrap schema.
func NewConnection(driver, dsn string) (*sqlx.DB, error) {
	schema, err := schemaFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s database: %w", driver, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not apply bootstrap schema: %w", err)
	}

	return db, nil
}

func schemaFor(driver string) (string, error) {
	switch driver {
	case "sqlite3":
		return schemaSQLite, nil
	case "postgres":
		return schemaPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
