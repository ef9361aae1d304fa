package messages

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalidate/pkg/forms"
)

// DisplayFunc decides whether the messages of control are shown. submitted
// is nil when the component is not attached to a Form, so whether the form
// was submitted is unknown.
type DisplayFunc func(control *forms.FormControl, submitted *bool) bool

// DisplayTouchedOrSubmitted shows messages once the control was touched or
// the form was submitted.
func DisplayTouchedOrSubmitted(control *forms.FormControl, submitted *bool) bool {
	return control.Touched() || (submitted != nil && *submitted)
}

// DisplaySubmitted shows messages only after the form was submitted.
func DisplaySubmitted(_ *forms.FormControl, submitted *bool) bool {
	return submitted != nil && *submitted
}

// DisplayDirty shows messages once the value changed or the form was
// submitted.
func DisplayDirty(control *forms.FormControl, submitted *bool) bool {
	return control.Dirty() || (submitted != nil && *submitted)
}

// DisplayAlways shows messages as soon as a control is invalid.
func DisplayAlways(*forms.FormControl, *bool) bool {
	return true
}

// Renderer turns a message template into display text. *render.MessageRenderer
// implements it.
type Renderer interface {
	RenderMessage(locale, tpl string, data map[string]any) (string, error)
}

// Catalog supplies message templates for failures that carry no message.
// *catalog.Catalog implements it.
type Catalog interface {
	Template(locale, key string) (string, bool)
}

// Config holds the settings shared by every ValidationMessages component of
// an application.
type Config struct {
	// DisplayWhen defaults to DisplayTouchedOrSubmitted.
	DisplayWhen DisplayFunc
	// Catalog is consulted when a failure has no message and no custom
	// message handles it.
	Catalog Catalog
	// Locale is passed to the catalogue and the renderer.
	Locale string
	// Renderer renders custom and catalogue templates. Defaults to a
	// render.MessageRenderer.
	Renderer Renderer
	// Logger receives debug traces. Defaults to a discarding logger.
	Logger *slog.Logger
}

// DefaultConfig returns the default display rule with no catalogue.
func DefaultConfig() Config {
	return Config{DisplayWhen: DisplayTouchedOrSubmitted}
}

func (c Config) withDefaults() Config {
	if c.DisplayWhen == nil {
		c.DisplayWhen = DisplayTouchedOrSubmitted
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

type configFile struct {
	Display string `yaml:"display"`
	Locale  string `yaml:"locale"`
}

var displayModes = map[string]DisplayFunc{
	"":          DisplayTouchedOrSubmitted,
	"touched":   DisplayTouchedOrSubmitted,
	"submitted": DisplaySubmitted,
	"dirty":     DisplayDirty,
	"always":    DisplayAlways,
}

// LoadConfig reads a YAML configuration:
//
//	display: touched   # touched | submitted | dirty | always
//	locale: en
//
// Catalog, Renderer and Logger are code-only settings and stay unset.
func LoadConfig(data []byte) (Config, error) {
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("messages: parse config: %w", err)
	}

	mode := strings.ToLower(strings.TrimSpace(file.Display))
	display, ok := displayModes[mode]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown display mode %q", ErrConfiguration, file.Display)
	}

	return Config{
		DisplayWhen: display,
		Locale:      strings.TrimSpace(file.Locale),
	}, nil
}
