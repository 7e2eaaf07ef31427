// Package migrations embeds the SQL schema migrations so every binary and test
// applies the same files without depending on the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
