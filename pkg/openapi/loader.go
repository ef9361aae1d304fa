package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader reads the document a form is built from.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions is the resolved loader configuration. Remote documents are
// only fetched when HTTPClient is set or AllowHTTPFallback is true.
type LoaderOptions struct {
	// FileSystem serves SourceKindFS locations.
	FileSystem fs.FS
	// HTTPClient fetches SourceKindURL locations.
	HTTPClient *http.Client
	// AllowHTTPFallback fetches URLs with a plain client when HTTPClient is nil.
	AllowHTTPFallback bool
	// RequestTimeout bounds each remote fetch. Zero means no limit.
	RequestTimeout time.Duration
}

// LoaderOption adjusts LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem serves fs sources from files, for example an embedded
// directory of schemas.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient fetches URL sources with client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback fetches URL sources with a default client bounded by
// timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions resolves options in order. Nil options are skipped.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var cfg LoaderOptions
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
