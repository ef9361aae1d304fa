package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	pkgopenapi "github.com/goliatone/go-formvalidate/pkg/openapi"
)

var (
	// ErrHTTPDisabled is returned for URL sources when no HTTP client or
	// fallback was configured.
	ErrHTTPDisabled = errors.New("openapi loader: remote documents are disabled")
	// ErrNoFileSystem is returned for fs sources when no fs.FS was configured.
	ErrNoFileSystem = errors.New("openapi loader: no filesystem configured")
)

// Loader reads the OpenAPI documents forms are built from. Files come from
// disk, fs sources from the configured fs.FS and URLs from the HTTP client.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader from resolved options. A caller supplied client is
// copied before the request timeout is applied to it.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{files: options.FileSystem, timeout: options.RequestTimeout}
	switch {
	case options.HTTPClient != nil:
		client := *options.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = l.timeout
		}
		l.client = &client
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load reads src and wraps the bytes in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	data, err := l.read(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: load %s: %w", src.Location(), err)
	}
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) read(ctx context.Context, src pkgopenapi.Source) ([]byte, error) {
	location := src.Location()
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		return loadFile(ctx, location)
	case pkgopenapi.SourceKindFS:
		return l.readFS(ctx, location)
	case pkgopenapi.SourceKindURL:
		if l.client == nil {
			return nil, ErrHTTPDisabled
		}
		return loadHTTP(ctx, l.client, location, l.timeout)
	}
	return nil, fmt.Errorf("unsupported source kind %q", src.Kind())
}

func (l *Loader) readFS(ctx context.Context, name string) ([]byte, error) {
	if l.files == nil {
		return nil, ErrNoFileSystem
	}
	if name == "" {
		return nil, errors.New("fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(l.files, name)
}
