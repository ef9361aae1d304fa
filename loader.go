package formvalidate

import (
	internalLoader "github.com/goliatone/go-formvalidate/internal/openapi/loader"
	pkgopenapi "github.com/goliatone/go-formvalidate/pkg/openapi"
)

// NewLoader returns the default document loader. Local files are always
// readable; fs and URL sources need WithFileSystem and WithHTTPFallback or
// WithHTTPClient.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}
