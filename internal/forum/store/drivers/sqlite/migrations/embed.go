package migrations

import "embed"

// Migrations holds the SQL migration files compiled into the binary so the
// service can bring its own schema up without external tooling.
//
//go:embed *.sql
var Migrations embed.FS
