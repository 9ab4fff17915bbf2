// Package migrations expone los archivos SQL embebidos para golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
