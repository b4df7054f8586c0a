// Package migrations applies the embedded SQL schema with golang-migrate.
package migrations

import "embed"

// Files holds the SQL migrations compiled into the binary.
//
//go:embed *.sql
var Files embed.FS
