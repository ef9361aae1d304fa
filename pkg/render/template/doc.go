// Package template defines the template engine contract used to render custom
// validation message templates.
package template
