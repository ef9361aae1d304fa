package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a
// translation was requested but no Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a localized string for key. Implementations format args
// into the result however they see fit.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a plain function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to render when a translation is not
// available. err is the translator error, or ErrMissingTranslator.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// missingTranslationDefault renders the "default" entry of a map argument
// when one is present, and the key otherwise.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		values, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := values["default"]; ok {
			if text := strings.TrimSpace(fmt.Sprint(fallback)); text != "" {
				return text
			}
		}
	}
	return key
}

// Translate resolves key through t, falling back through onMissing. A nil
// onMissing uses the default handler.
func Translate(t Translator, onMissing MissingTranslationHandler, locale, key string, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}
