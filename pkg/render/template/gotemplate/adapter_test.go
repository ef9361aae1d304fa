package gotemplate_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formvalidate/pkg/render/template/gotemplate"
)

func TestEngineRenderStringWithPayload(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var out bytes.Buffer
	got, err := engine.RenderString("At least {{ requiredLength }} {{ requiredLength|plural:\"character,characters\" }}", map[string]any{
		"requiredLength": 5,
		"actualLength":   3,
	}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "At least 5 characters" {
		t.Fatalf("unexpected output %q", got)
	}
	if out.String() != got {
		t.Fatalf("expected writer to receive %q, got %q", got, out.String())
	}
}

func TestEngineRendersWholeFloatsAsIntegers(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("min {{ min }}, got {{ actual }}", map[string]any{"min": 3.0, "actual": 1.5})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "min 3, got 1.500000" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRenderTemplateFromFS(t *testing.T) {
	files := fstest.MapFS{
		"required.tpl": {Data: []byte("{{ field|trim }} is required")},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.Render("required", map[string]any{"field": "  Email "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Email is required" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRenderTemplateWithoutLoader(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing named template")
	}
}

func TestEngineGlobalContextAndFuncs(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithGlobalData(map[string]any{"app": "signup"}),
		gotemplate.WithTemplateFunc(map[string]any{
			"upper": func(s string) string { return strings.ToUpper(s) },
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.GlobalContext(map[string]any{"env": "staging"}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderString("{{ upper(app) }}/{{ env }}", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "SIGNUP/staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	err = engine.RegisterFilter("shout_message", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout_message", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	got, err := engine.RenderString("{{ name|shout_message }}", map[string]any{"name": "required"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "REQUIRED!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestIsTemplateContent(t *testing.T) {
	if gotemplate.IsTemplateContent("plain text") {
		t.Fatalf("plain text is not template content")
	}
	if !gotemplate.IsTemplateContent("{{ x }}") || !gotemplate.IsTemplateContent("{% if x %}y{% endif %}") {
		t.Fatalf("expected markup to be detected")
	}
}

func TestNativeEngineRendersPayloadNumbers(t *testing.T) {
	engine, err := gotemplate.NewNative()
	if err != nil {
		t.Fatalf("new native engine: %v", err)
	}

	tpl := "At least {{ requiredLength }} {{ requiredLength|plural:\"character,characters\" }}, got {{ actual }}"
	tests := []struct {
		data map[string]any
		want string
	}{
		{data: map[string]any{"requiredLength": 5, "actual": 1.5}, want: "At least 5 characters, got 1.5"},
		{data: map[string]any{"requiredLength": 1.0, "actual": int64(0)}, want: "At least 1 character, got 0"},
	}
	for _, tc := range tests {
		got, err := engine.RenderString(tpl, tc.data)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestNativeEngineNamedTemplatesAndFuncs(t *testing.T) {
	files := fstest.MapFS{
		"required.tpl": {Data: []byte("{{ shout(field)|trim }} is required")},
	}
	engine, err := gotemplate.NewNative(
		gotemplatepkg.WithFS(files),
		gotemplatepkg.WithTemplateFunc(map[string]any{
			"shout": func(s string) string { return strings.ToUpper(s) },
		}),
	)
	if err != nil {
		t.Fatalf("new native engine: %v", err)
	}

	got, err := engine.Render("required", map[string]any{"field": "  Email "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "EMAIL is required" {
		t.Fatalf("unexpected output %q", got)
	}
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing named template")
	}
}
