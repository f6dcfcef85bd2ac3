// Package lostfound embeds the goose migrations for the service schema.
package lostfound

import "embed"

// FS holds the numbered SQL migrations.
//
//go:embed *.sql
var FS embed.FS
