// Package migrations embeds the SQL schema files applied at store open.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
