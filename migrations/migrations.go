// Package migrations embeds the versioned schema applied by cmd/migrate and by
// the integration tests.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed *.sql atlas.sum
var files embed.FS

// FS exposes the migration directory.
func FS() fs.FS {
	return files
}

// Ordered returns the migration file contents in version order.
func Ordered() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		b, err := files.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, string(b))
	}
	return out, nil
}
