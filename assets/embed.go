// assets/embed.go
//
// Embedded data files shipped inside the binary.
//   - words.list: the default dictionary, whitespace-delimited.
//   - migrations/*.sql: schema for the results database.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed words.list
var wordList string

//go:embed migrations/*.sql
var migrations embed.FS

// WordList returns the raw default dictionary text.
func WordList() string { return wordList }

// Migrations returns the SQL migration files, rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
