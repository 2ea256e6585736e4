// Package portal exposes embedded assets shared by the commands.
package portal

import "embed"

// Migrations contains the embedded goose SQL migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS
