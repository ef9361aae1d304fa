package render

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	defaultLocaleKey     = "locale"
	defaultTranslateName = "translate"
)

// TemplateI18nConfig names the template helpers and where they find the
// locale. Zero values select "translate" and "locale".
type TemplateI18nConfig struct {
	// LocaleKey is the map key or struct field holding the locale when a
	// helper receives the whole template context instead of a locale string.
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName string
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs builds the helpers message templates use to reach the
// catalogue:
//
//	{{ translate(locale, "fields.email") }}
//	{{ current_locale(locale) }}
//
// The first argument is either a locale string or a value carrying one
// under LocaleKey. Register the result with an engine's WithTemplateFunc.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	key := firstNonBlank(cfg.LocaleKey, defaultLocaleKey)
	return map[string]any{
		firstNonBlank(cfg.FuncName, defaultTranslateName): func(src any, msgKey string, args ...any) string {
			return Translate(t, cfg.OnMissing, localeOf(src, key), msgKey, args...)
		},
		"current_locale": func(src any) string {
			return localeOf(src, key)
		},
	}
}

func firstNonBlank(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// localeOf reads a locale from a string, a string keyed map or a struct
// field matching key case-insensitively.
func localeOf(src any, key string) string {
	switch v := src.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]string:
		return v[key]
	case map[string]any:
		if locale, ok := v[key].(string); ok {
			return locale
		}
		if value, ok := v[key]; ok && value != nil {
			return strings.TrimSpace(fmt.Sprint(value))
		}
		return ""
	}

	rv := reflect.Indirect(reflect.ValueOf(src))
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		field := rv.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, key) })
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return ""
		}
		value := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if value.IsValid() && value.Kind() == reflect.String {
			return value.String()
		}
	}
	return ""
}
