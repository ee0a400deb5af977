package migrations

import "embed"

// FS embeds the SQL migration files in this directory. They are applied
// through the golang-migrate iofs driver at startup.
//
//go:embed *.sql
var FS embed.FS

const Version = 1
