// Package data provides the embedded default catalogs.
package data

import "embed"

// DefaultDistro is the distribution whose catalog is used when none is configured.
const DefaultDistro = "fedora"

// Catalogs contains the catalog definitions, one JSON file per distribution.
// They are parsed by pkg/catalog; a user-supplied catalog file takes
// precedence when configured.
//
//go:embed *.json
var Catalogs embed.FS

// Catalog returns the raw catalog document for a distribution.
func Catalog(distro string) ([]byte, error) {
	return Catalogs.ReadFile(distro + ".json")
}
