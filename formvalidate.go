// Package formvalidate wires the pieces of the module together: it loads an
// OpenAPI document, builds the form tree for one of its schemas and attaches
// a ValidationMessages component that reports the first message per field.
//
// The packages under pkg/ can be used on their own; this package only saves
// the boilerplate of the common path.
package formvalidate

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/messages"
	pkgopenapi "github.com/goliatone/go-formvalidate/pkg/openapi"
)

// Config aliases messages.Config for callers configuring display rules.
type Config = messages.Config

// Message aliases messages.Message, one rendered failure.
type Message = messages.Message

// Form bundles a built form tree with its submission directive and the
// messages component covering every leaf control.
type Form struct {
	Group    *forms.FormGroup
	Form     *messages.Form
	Messages *messages.ValidationMessages
}

// Options configures Build.
type Options struct {
	// Loader fetches the document; NewLoader() when nil.
	Loader pkgopenapi.Loader
	// Build options passed to openapi.BuildForm.
	Build []pkgopenapi.BuildOption
	// Config for the messages component. When nil the default display rule
	// is used with DefaultCatalog.
	Config *messages.Config
	// Children are custom message displays added to the component.
	Children []*messages.ValidationMessage
}

// Build loads src, builds the form for schemaName and initialises a
// ValidationMessages component for every leaf control of the form.
func Build(ctx context.Context, src pkgopenapi.Source, schemaName string, opts Options) (*Form, error) {
	if src == nil {
		return nil, errors.New("formvalidate: source is required")
	}
	loader := opts.Loader
	if loader == nil {
		loader = NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	group, err := pkgopenapi.BuildForm(ctx, doc, schemaName, opts.Build...)
	if err != nil {
		return nil, err
	}
	return Attach(group, opts.Config, opts.Children...)
}

// Attach wraps an existing group the way Build does. A group without leaf
// controls has nothing to report on and is an error.
func Attach(group *forms.FormGroup, cfg *messages.Config, children ...*messages.ValidationMessage) (*Form, error) {
	if group == nil {
		return nil, errors.New("formvalidate: group is required")
	}
	leaves := forms.Leaves(group)
	if len(leaves) == 0 {
		return nil, errors.New("formvalidate: form has no fields")
	}
	if cfg == nil {
		defaults, err := DefaultConfig()
		if err != nil {
			return nil, err
		}
		cfg = &defaults
	}

	form := messages.NewForm(group)
	component := messages.New(
		messages.WithForm(form),
		messages.WithConfig(*cfg),
		messages.WithMessage(children...),
	)
	if err := component.SetFor(messages.ForControls(leaves...)); err != nil {
		return nil, fmt.Errorf("formvalidate: %w", err)
	}
	if err := component.Init(); err != nil {
		return nil, fmt.Errorf("formvalidate: %w", err)
	}
	return &Form{Group: group, Form: form, Messages: component}, nil
}

// DefaultConfig is messages.DefaultConfig backed by DefaultCatalog.
func DefaultConfig() (messages.Config, error) {
	cat, err := DefaultCatalog()
	if err != nil {
		return messages.Config{}, fmt.Errorf("formvalidate: %w", err)
	}
	cfg := messages.DefaultConfig()
	cfg.Catalog = cat
	return cfg, nil
}

// Submit marks the form submitted and returns the messages now on display.
func (f *Form) Submit() ([]Message, error) {
	f.Form.Submit()
	if err := f.Messages.Err(); err != nil {
		return nil, err
	}
	return f.Messages.Messages()
}

// Close releases the component's subscriptions.
func (f *Form) Close() {
	if f != nil && f.Messages != nil {
		f.Messages.Destroy()
	}
}
