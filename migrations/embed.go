// Package migrations embeds the PostgreSQL schema migrations so the binaries
// can apply them without the source tree.
package migrations

import "embed"

// FS holds every *.sql migration in golang-migrate naming
//
//go:embed *.sql
var FS embed.FS
