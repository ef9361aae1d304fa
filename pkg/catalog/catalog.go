package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

var (
	// ErrMissingMessage is returned by Translate when no locale in the
	// fallback chain defines the key.
	ErrMissingMessage = errors.New("catalog: message not found")
	// ErrInvalidLocale is returned when a locale tag cannot be parsed.
	ErrInvalidLocale = errors.New("catalog: invalid locale")
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLocale sets the locale used when a requested locale does not
// match any loaded locale, and as the last step of every lookup. Defaults to
// "en".
func WithDefaultLocale(locale string) Option {
	return func(c *Catalog) {
		if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
			c.defaultTag = tag
		}
	}
}

// Catalog holds message templates keyed by locale then key. It is safe for
// concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	defaultTag language.Tag
	messages   map[string]map[string]string
	tags       []language.Tag
	matcher    language.Matcher
}

// New constructs an empty catalogue.
func New(options ...Option) *Catalog {
	c := &Catalog{
		defaultTag: language.English,
		messages:   make(map[string]map[string]string),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Add registers messages for locale, replacing existing keys.
func (c *Catalog) Add(locale string, messages map[string]string) error {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidLocale, locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	name := tag.String()
	bucket, ok := c.messages[name]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[name] = bucket
		c.tags = append(c.tags, tag)
		c.matcher = nil
	}
	for key, value := range messages {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		bucket[key] = value
	}
	return nil
}

// Locales returns the loaded locales, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for name := range c.messages {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefaultLocale returns the fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultTag.String()
}

// Match negotiates locale against the loaded locales and returns the best
// supported one, or the default locale when nothing matches.
func (c *Catalog) Match(locale string) string {
	requested, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return c.DefaultLocale()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.tags) == 0 {
		return c.defaultTag.String()
	}
	if c.matcher == nil {
		c.matcher = language.NewMatcher(c.tags)
	}
	_, index, confidence := c.matcher.Match(requested)
	if confidence == language.No {
		return c.defaultTag.String()
	}
	return c.tags[index].String()
}

// Template returns the raw template for key, looking first in the locale
// negotiated for locale and then in the default locale.
func (c *Catalog) Template(locale, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}

	chain := []string{c.Match(locale), c.DefaultLocale()}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, name := range chain {
		if msg, ok := c.messages[name][key]; ok && strings.TrimSpace(msg) != "" {
			return msg, true
		}
	}
	return "", false
}

var placeholderPattern = regexp.MustCompile(`%\{([^}]+)\}`)

// Translate returns the message for key with %{name} placeholders filled
// from args. Arguments may be maps (map[string]any or map[string]string) or
// alternating name, value pairs. Placeholders without a value are kept.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	msg, ok := c.Template(locale, key)
	if !ok {
		return "", fmt.Errorf("%w: %s (%s)", ErrMissingMessage, key, locale)
	}
	params := collectParams(args)
	if len(params) == 0 {
		return msg, nil
	}
	return placeholderPattern.ReplaceAllStringFunc(msg, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-1])
		if value, ok := params[name]; ok {
			return value
		}
		return match
	}), nil
}

func collectParams(args []any) map[string]string {
	params := make(map[string]string)
	for i := 0; i < len(args); i++ {
		switch arg := args[i].(type) {
		case map[string]any:
			for key, value := range arg {
				params[key] = fmt.Sprint(value)
			}
		case map[string]string:
			for key, value := range arg {
				params[key] = value
			}
		case string:
			if i+1 < len(args) {
				params[arg] = fmt.Sprint(args[i+1])
				i++
			}
		}
	}
	return params
}
