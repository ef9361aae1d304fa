package render

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formvalidate/pkg/render/template"
	"github.com/goliatone/go-formvalidate/pkg/render/template/gotemplate"
)

// Output selects how rendered messages are post-processed.
type Output int

const (
	// OutputHTML sanitizes messages with the configured HTML policy.
	OutputHTML Output = iota
	// OutputText strips markup and decodes entities.
	OutputText
	// OutputRaw returns the template output untouched.
	OutputRaw
)

// Option configures a MessageRenderer.
type Option func(*MessageRenderer)

// WithEngine renders templates with engine instead of a default pongo2
// engine. The caller is responsible for registering i18n helpers on it.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *MessageRenderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTranslator exposes translator to templates through the translate
// helper.
func WithTranslator(translator Translator) Option {
	return func(r *MessageRenderer) {
		r.translator = translator
	}
}

// WithMissingTranslation overrides the fallback used for missing keys.
func WithMissingTranslation(handler MissingTranslationHandler) Option {
	return func(r *MessageRenderer) {
		r.onMissing = handler
	}
}

// WithPolicy replaces the HTML sanitizer policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *MessageRenderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithOutput selects the post-processing applied to rendered messages.
func WithOutput(output Output) Option {
	return func(r *MessageRenderer) {
		r.output = output
	}
}

// MessageRenderer turns message templates into display text. Templates are
// pongo2 strings evaluated against the failure payload, so
// "At least {{ requiredLength }} characters" reads the minlength payload.
type MessageRenderer struct {
	engine     template.TemplateRenderer
	translator Translator
	onMissing  MissingTranslationHandler
	policy     *bluemonday.Policy
	output     Output
}

// NewMessageRenderer constructs a renderer. Without WithEngine, a string-only
// pongo2 engine is created with the translate and current_locale helpers.
func NewMessageRenderer(options ...Option) (*MessageRenderer, error) {
	r := &MessageRenderer{output: OutputHTML}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.policy == nil {
		r.policy = InlinePolicy()
	}
	if r.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithTemplateFunc(TemplateI18nFuncs(r.translator, TemplateI18nConfig{
			OnMissing: r.onMissing,
		})))
		if err != nil {
			return nil, fmt.Errorf("render: create template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// MustNewMessageRenderer panics when NewMessageRenderer fails.
func MustNewMessageRenderer(options ...Option) *MessageRenderer {
	r, err := NewMessageRenderer(options...)
	if err != nil {
		panic(err)
	}
	return r
}

// RenderMessage evaluates tpl with data. The locale is exposed to the
// template as "locale" unless data already defines it. Text without template
// markup skips the engine.
func (r *MessageRenderer) RenderMessage(locale, tpl string, data map[string]any) (string, error) {
	if r == nil {
		return "", fmt.Errorf("render: message renderer is nil")
	}
	if strings.TrimSpace(tpl) == "" {
		return "", nil
	}

	rendered := tpl
	if gotemplate.IsTemplateContent(tpl) {
		ctx := make(map[string]any, len(data)+1)
		for key, value := range data {
			ctx[key] = value
		}
		if _, ok := ctx["locale"]; !ok {
			ctx["locale"] = locale
		}

		out, err := r.engine.RenderString(tpl, ctx)
		if err != nil {
			return "", fmt.Errorf("render: message template: %w", err)
		}
		rendered = out
	}

	return r.finish(rendered), nil
}

// Translate resolves key through the configured translator.
func (r *MessageRenderer) Translate(locale, key string, args ...any) string {
	if r == nil {
		return Translate(nil, nil, locale, key, args...)
	}
	return Translate(r.translator, r.onMissing, locale, key, args...)
}

func (r *MessageRenderer) finish(rendered string) string {
	switch r.output {
	case OutputText:
		return PlainText(rendered)
	case OutputRaw:
		return strings.TrimSpace(rendered)
	default:
		return SanitizeHTML(rendered, r.policy)
	}
}
