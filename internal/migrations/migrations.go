// Package migrations embeds the goose SQL migrations for the principal
// store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
