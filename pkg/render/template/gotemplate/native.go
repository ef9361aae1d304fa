package gotemplate

import (
	"fmt"
	"strconv"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formvalidate/pkg/render/template"
)

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// NewNative constructs a github.com/goliatone/go-template engine prepared
// for message payloads: the trim and plural filters are registered and
// numbers reach templates as their shortest decimal text, so a minlength of 5
// prints "5". Without WithFS or WithBaseDir the engine renders inline strings
// only.
//
// go-template passes data through JSON before executing, which turns every
// number into a float; formatting them up front keeps the output stable.
func NewNative(options ...gotemplatepkg.Option) (*gotemplatepkg.Engine, error) {
	registerDefaultFilters()

	opts := make([]gotemplatepkg.Option, 0, len(options)+1)
	opts = append(opts, gotemplatepkg.WithFS(emptyTemplates))
	opts = append(opts, options...)

	engine, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: create go-template engine: %w", err)
	}
	engine.RegisterPreHook(formatNumbers)
	return engine, nil
}

func formatNumbers(ctx *gotemplatepkg.HookContext) error {
	if data, ok := ctx.Data.(map[string]any); ok {
		ctx.Data = numbersAsText(data)
	}
	return nil
}

func numbersAsText(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = numberText(value)
	}
	return out
}

func numberText(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		return numbersAsText(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = numberText(item)
		}
		return out
	}
	return value
}
