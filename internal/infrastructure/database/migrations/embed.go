// Package migrations embeds the goose SQL migrations for the library schema.
package migrations

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Dir is the directory goose reads from within FS.
const Dir = "."

// NewProvider returns a goose provider running the embedded migrations
// against a Postgres handle.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	return goose.NewProvider(goose.DialectPostgres, db, FS)
}
