// Package catalog stores validation message templates per locale and error
// key. Catalogue files are JSON or YAML documents whose top-level keys are
// locales:
//
//	en:
//	  required: "This field is required"
//	  minlength: "Use at least {{ requiredLength }} characters"
//	  fields:
//	    email: "E-mail"
//	es:
//	  required: "Este campo es obligatorio"
//
// Nested maps are flattened into dotted keys ("fields.email"). Requested
// locales are negotiated against the loaded ones with golang.org/x/text.
package catalog
