package openapi

import "errors"

// SourceKind says how a Loader reaches a document.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source names an OpenAPI document: a path on disk, a path inside an fs.FS
// or a URL.
type Source interface {
	Kind() SourceKind
	Location() string
}

var (
	errNoSource      = errors.New("openapi: document source is required")
	errEmptyDocument = errors.New("openapi: document is empty")
)

// Document holds the bytes of a loaded OpenAPI document together with where
// they came from. BuildForm and SchemaNames parse it on demand.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw into a Document. Both arguments are required.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errNoSource
	case len(raw) == 0:
		return Document{}, errEmptyDocument
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument is NewDocument for fixtures; it panics on error.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the document bytes.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location reports where the document was read from, or "".
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
