// Package migrations embeds the goose migration files for the postgres adapter.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
