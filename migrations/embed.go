package migrations

import "embed"

// Files holds the storage schema. New files must sort after the last applied version.
//
//go:embed *.sql
var Files embed.FS
