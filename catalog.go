package formvalidate

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-formvalidate/pkg/catalog"
)

//go:embed locales/*.yaml
var locales embed.FS

// DefaultCatalog returns a catalogue with English and Spanish messages for
// every key the built-in validators report, plus "server".
func DefaultCatalog(options ...catalog.Option) (*catalog.Catalog, error) {
	return catalog.LoadFS(locales, options...)
}

// LocaleFS exposes the embedded catalogue files so callers can layer their
// own on top.
func LocaleFS() fs.FS {
	return locales
}
