package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// location is the Source every constructor in this package returns.
type location struct {
	kind SourceKind
	at   string
}

func (l location) Kind() SourceKind { return l.kind }
func (l location) Location() string { return l.at }

// SourceFromFile names a document on disk.
func SourceFromFile(path string) Source {
	return location{kind: SourceKindFile, at: filepath.Clean(path)}
}

// SourceFromFS names a document inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return location{kind: SourceKindFS, at: name}
}

// SourceFromURL names a remote document. It panics on a malformed URL; use
// ParseSource for user input.
func SourceFromURL(raw string) Source {
	src, err := urlSource(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// ParseSource turns a command-line argument into a Source: http and https
// URLs are fetched, anything else is read from disk.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("openapi: source is required")
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return urlSource(raw)
	}
	return SourceFromFile(raw), nil
}

func urlSource(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("openapi: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("openapi: invalid URL %q: %w", raw, err)
	}
	return location{kind: SourceKindURL, at: raw}, nil
}
