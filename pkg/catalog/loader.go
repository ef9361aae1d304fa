package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and loads every JSON or YAML catalogue file. Files are
// applied in path order, so later files override earlier ones for the same
// locale and key. A nil fsys yields an empty catalogue.
func LoadFS(fsys fs.FS, options ...Option) (*Catalog, error) {
	c := New(options...)
	if err := c.MergeFS(fsys); err != nil {
		return nil, err
	}
	return c, nil
}

// MergeFS layers the catalogue files of fsys over the loaded messages, in
// path order. A nil fsys is a no-op.
func (c *Catalog) MergeFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog: walk: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		if err := c.Merge(data, path); err != nil {
			return err
		}
	}
	return nil
}

// Parse builds a catalogue from a single JSON or YAML document.
func Parse(data []byte, options ...Option) (*Catalog, error) {
	c := New(options...)
	if err := c.Merge(data, "<inline>"); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge adds the locales of a JSON or YAML document to the catalogue. source
// names the document in errors.
func (c *Catalog) Merge(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	locales := make([]string, 0, len(doc))
	for locale := range doc {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		raw, ok := asStringMap(doc[locale])
		if !ok {
			return fmt.Errorf("catalog: %s: locale %q must map keys to messages, got %T", source, locale, doc[locale])
		}
		flat := make(map[string]string)
		if err := flatten("", raw, flat); err != nil {
			return fmt.Errorf("catalog: %s: locale %q: %w", source, locale, err)
		}
		if err := c.Add(locale, flat); err != nil {
			return fmt.Errorf("catalog: %s: %w", source, err)
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("catalog: file %s is empty", source)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = nil
	if err := yaml.Unmarshal(data, &doc); err == nil && doc != nil {
		return doc, nil
	}
	return nil, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
}

func flatten(prefix string, in map[string]any, out map[string]string) error {
	for key, value := range in {
		name := strings.TrimSpace(key)
		if prefix != "" {
			name = prefix + "." + name
		}
		if nested, ok := asStringMap(value); ok {
			if err := flatten(name, nested, out); err != nil {
				return err
			}
			continue
		}
		switch v := value.(type) {
		case string:
			out[name] = v
		case nil:
		default:
			return fmt.Errorf("key %q must be a string, got %T", name, value)
		}
	}
	return nil
}

func asStringMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
