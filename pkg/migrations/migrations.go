/*
Package migrations embeds baliusd's goose SQL migrations so
cmd/baliusd-migrate ships as a single static binary with no separate
migrations directory to deploy alongside it.
*/
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
