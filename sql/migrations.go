// Package migrations embeds the goose migrations for the PostgreSQL cache backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
