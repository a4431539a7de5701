// Package migrations carries the SQL schema of the local store. The
// files are embedded so the binary can migrate the database from any
// working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
