// Package migrations embeds the client's sqlite schema migrations for goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
