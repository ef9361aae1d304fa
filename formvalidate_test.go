package formvalidate_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidate"
	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/messages"
	pkgopenapi "github.com/goliatone/go-formvalidate/pkg/openapi"
)

const contactDocument = `
openapi: 3.0.3
info:
  title: Contact
  version: 1.0.0
paths: {}
components:
  schemas:
    Contact:
      type: object
      required: [name, email]
      properties:
        name:
          type: string
          minLength: 3
          x-order: 1
          x-messages:
            minlength: Name is too short
        email:
          type: string
          format: email
          x-order: 2
        message:
          type: string
          maxLength: 5
`

func build(t *testing.T, values map[string]any, cfg *messages.Config) *formvalidate.Form {
	t.Helper()
	files := fstest.MapFS{"openapi.yaml": {Data: []byte(contactDocument)}}
	loader := formvalidate.NewLoader(pkgopenapi.WithFileSystem(files))

	form, err := formvalidate.Build(context.Background(), pkgopenapi.SourceFromFS("openapi.yaml"), "Contact", formvalidate.Options{
		Loader: loader,
		Build:  []pkgopenapi.BuildOption{pkgopenapi.WithValues(values)},
		Config: cfg,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(form.Close)
	return form
}

func texts(msgs []formvalidate.Message) map[string]string {
	out := make(map[string]string, len(msgs))
	for _, msg := range msgs {
		out[msg.Path] = msg.Text
	}
	return out
}

func TestBuildShowsMessagesAfterSubmit(t *testing.T) {
	form := build(t, map[string]any{"name": "Al", "message": "too long"}, nil)

	before, err := form.Messages.Messages()
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(before) != 0 {
		t.Fatalf("expected no messages before submit, got %+v", before)
	}

	after, err := form.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := map[string]string{
		"name":    "Name is too short",
		"email":   "This field is required.",
		"message": "Enter at most 5 characters (8 entered).",
	}
	if diff := cmp.Diff(want, texts(after)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWithLocale(t *testing.T) {
	cfg, err := formvalidate.DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.Locale = "es-MX"
	cfg.DisplayWhen = messages.DisplayAlways

	form := build(t, map[string]any{"name": "Alice", "email": "alice"}, &cfg)
	msgs, err := form.Messages.Messages()
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	want := map[string]string{"email": "Introduce una dirección de correo válida."}
	if diff := cmp.Diff(want, texts(msgs)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWithoutCatalogFailsOnUnresolvableErrors(t *testing.T) {
	cfg := messages.DefaultConfig()
	files := fstest.MapFS{"openapi.yaml": {Data: []byte(contactDocument)}}

	_, err := formvalidate.Build(context.Background(), pkgopenapi.SourceFromFS("openapi.yaml"), "Contact", formvalidate.Options{
		Loader: formvalidate.NewLoader(pkgopenapi.WithFileSystem(files)),
		Config: &cfg,
	})
	if !errors.Is(err, messages.ErrUnresolvableDisplay) {
		t.Fatalf("expected ErrUnresolvableDisplay, got %v", err)
	}
}

func TestAttachErrors(t *testing.T) {
	if _, err := formvalidate.Attach(nil, nil); err == nil {
		t.Fatalf("expected error for nil group")
	}
	if _, err := formvalidate.Attach(forms.NewGroup(), nil); err == nil {
		t.Fatalf("expected error for a group without fields")
	}
	if _, err := formvalidate.Build(context.Background(), nil, "Contact", formvalidate.Options{}); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestDefaultCatalogLocales(t *testing.T) {
	cat, err := formvalidate.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if diff := cmp.Diff([]string{"en", "es"}, cat.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	for _, key := range []string{forms.KeyRequired, forms.KeyEmail, forms.KeyMin, forms.KeyMax, forms.KeyMinLength, forms.KeyMaxLength, forms.KeyPattern, forms.KeyServer} {
		for _, locale := range cat.Locales() {
			if _, ok := cat.Template(locale, key); !ok {
				t.Fatalf("missing %s message for %s", locale, key)
			}
		}
	}
}
