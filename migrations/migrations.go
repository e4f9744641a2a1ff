package migrations

import (
	"embed"
)

// Dir is the directory goose should read from within the embedded FS
const Dir = "."

//go:embed *.sql
var embedMigrations embed.FS

func GetMigrations() embed.FS {
	return embedMigrations
}
