// Package migrations embeds the SQL schema of the food catalog.
package migrations

import "embed"

// Dir is the directory inside FS holding the migration files.
const Dir = "sql"

// FS holds golang-migrate style up/down migrations.
//
//go:embed sql/*.sql
var FS embed.FS
