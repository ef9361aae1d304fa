// Package openapi turns component schemas of an OpenAPI 3 document into form
// trees. Schema constraints (required, minLength, maxLength, minimum,
// maximum, pattern, format email, minItems, maxItems) become validators that
// report the same keys as the forms package, with messages taken from the
// x-messages extension of each property.
//
// Loading is split from building: a Loader fetches a Document from a file,
// an fs.FS entry or a URL, and BuildForm parses it with kin-openapi. The
// Loader implementation lives under internal/openapi/loader; the root
// formvalidate package exposes the constructor.
package openapi
