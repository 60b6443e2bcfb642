// Package migrations embeds the SQLite schema migrations applied by
// golang-migrate at start-up.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
