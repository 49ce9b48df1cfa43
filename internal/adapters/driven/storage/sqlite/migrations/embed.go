// Package migrations holds the schema migration files the store applies
// at startup.
package migrations

import "embed"

// FS exposes the numbered .sql files, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
