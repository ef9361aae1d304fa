package openapi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/validation"
)

var (
	// ErrSchemaNotFound reports a schema name missing from components.schemas.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrUnsupportedSchema reports a schema BuildForm cannot turn into controls.
	ErrUnsupportedSchema = errors.New("openapi: unsupported schema")
	// ErrRecursiveSchema reports an object schema that contains itself through
	// its properties.
	ErrRecursiveSchema = errors.New("openapi: recursive schema")
)

const (
	messagesExtensionKey = "x-messages"
	orderExtensionKey    = "x-order"

	maxObjectDepth = 64
)

// BuildOption customises BuildForm.
type BuildOption func(*buildConfig)

type buildConfig struct {
	values       map[string]any
	messages     map[string]string
	validate     bool
	externalRefs bool
}

// WithValues seeds control values. Nested maps fill groups and slices size
// arrays; fields without a value fall back to the schema default.
func WithValues(values map[string]any) BuildOption {
	return func(cfg *buildConfig) {
		cfg.values = values
	}
}

// WithDefaultMessages sets messages per error key for properties whose
// x-messages extension does not name that key.
func WithDefaultMessages(messages map[string]string) BuildOption {
	return func(cfg *buildConfig) {
		if len(messages) == 0 {
			return
		}
		if cfg.messages == nil {
			cfg.messages = make(map[string]string, len(messages))
		}
		for key, message := range messages {
			cfg.messages[strings.TrimSpace(key)] = message
		}
	}
}

// WithDocumentValidation toggles kin-openapi document validation before the
// schema is walked. Enabled by default.
func WithDocumentValidation(enabled bool) BuildOption {
	return func(cfg *buildConfig) {
		cfg.validate = enabled
	}
}

// WithExternalReferences allows $ref pointers into other files or URLs.
func WithExternalReferences(enabled bool) BuildOption {
	return func(cfg *buildConfig) {
		cfg.externalRefs = enabled
	}
}

// BuildForm parses doc and builds a form group for the component schema named
// schemaName. Object schemas become groups, arrays become arrays of their
// item schema and everything else becomes a FormControl.
func BuildForm(ctx context.Context, doc Document, schemaName string, opts ...BuildOption) (*forms.FormGroup, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	schemaName = strings.TrimSpace(schemaName)
	if schemaName == "" {
		return nil, fmt.Errorf("%w: schema name is required", ErrSchemaNotFound)
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	cfg := buildConfig{validate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	spec, err := load(ctx, raw, cfg)
	if err != nil {
		return nil, err
	}

	ref := componentSchema(spec, schemaName)
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrSchemaNotFound, schemaName, strings.Join(schemaNames(spec), ", "))
	}
	if !isObject(ref.Value) {
		return nil, fmt.Errorf("%w: %q is not an object schema", ErrUnsupportedSchema, schemaName)
	}

	b := &builder{cfg: cfg}
	return b.group(ref.Value, "", cfg.values)
}

// SchemaNames lists the component schemas of doc in name order.
func SchemaNames(ctx context.Context, doc Document) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	spec, err := load(ctx, doc.Raw(), buildConfig{})
	if err != nil {
		return nil, err
	}
	return schemaNames(spec), nil
}

func load(ctx context.Context, raw []byte, cfg buildConfig) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

func componentSchema(spec *openapi3.T, name string) *openapi3.SchemaRef {
	if spec == nil || spec.Components == nil {
		return nil
	}
	return spec.Components.Schemas[name]
}

func schemaNames(spec *openapi3.T) []string {
	if spec == nil || spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type builder struct {
	cfg buildConfig
	// objects currently being expanded; an object reached again through its
	// own properties is a cycle.
	stack []*openapi3.Schema
}

func (b *builder) control(schema *openapi3.Schema, path string, value any, required bool) (forms.Control, error) {
	switch {
	case isObject(schema):
		group, err := b.group(schema, path, value)
		if err != nil {
			return nil, err
		}
		return group, nil
	case schema.Type.Is("array"):
		return b.array(schema, path, value, required)
	default:
		return b.leaf(schema, path, value, required)
	}
}

func (b *builder) group(schema *openapi3.Schema, path string, value any) (*forms.FormGroup, error) {
	if slices.Contains(b.stack, schema) || len(b.stack) >= maxObjectDepth {
		return nil, fmt.Errorf("%w at %q", ErrRecursiveSchema, path)
	}
	b.stack = append(b.stack, schema)
	defer func() { b.stack = b.stack[:len(b.stack)-1] }()

	values, _ := value.(map[string]any)
	fields := make([]forms.Field, 0, len(schema.Properties))
	for _, name := range orderedProperties(schema) {
		property := schema.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		raw, present := values[name]
		if !present {
			raw = property.Value.Default
		}
		child, err := b.control(property.Value, joinPath(path, name), raw, slices.Contains(schema.Required, name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, forms.Named(name, child))
	}
	return forms.NewGroup(fields...), nil
}

func (b *builder) array(schema *openapi3.Schema, path string, value any, required bool) (*forms.FormArray, error) {
	if schema.Items == nil || schema.Items.Value == nil {
		return nil, fmt.Errorf("%w: array %q has no items", ErrUnsupportedSchema, path)
	}

	// Elements are bounded by the supplied data, so a recursive item schema is
	// fine here; only property recursion is checked.
	saved := b.stack
	b.stack = nil
	defer func() { b.stack = saved }()

	elements, _ := value.([]any)
	children := make([]forms.Control, 0, len(elements))
	for idx, element := range elements {
		child, err := b.control(schema.Items.Value, joinPath(path, strconv.Itoa(idx)), element, false)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	array := forms.NewArray(children...)
	messages := b.messages(schema)
	var validators []forms.ValidatorFn
	if required {
		validators = append(validators, validation.Required(messages[forms.KeyRequired]))
	}
	if schema.MinItems > 0 {
		validators = append(validators, validation.MinLength(int(schema.MinItems), messages[forms.KeyMinLength]))
	}
	if schema.MaxItems != nil {
		validators = append(validators, validation.MaxLength(int(*schema.MaxItems), messages[forms.KeyMaxLength]))
	}
	if len(validators) > 0 {
		array.SetValidators(validators...)
		array.UpdateValueAndValidity()
	}
	return array, nil
}

func (b *builder) leaf(schema *openapi3.Schema, path string, value any, required bool) (*forms.FormControl, error) {
	if value == nil && schema.Type.Is("boolean") {
		value = false
	}
	validators, err := b.validators(schema, path, required)
	if err != nil {
		return nil, err
	}
	return forms.NewControl(value, validators...), nil
}

var patternValidator = validation.WrapSingleArgument(forms.PatternRegexp, forms.KeyPattern)

func (b *builder) validators(schema *openapi3.Schema, path string, required bool) ([]forms.ValidatorFn, error) {
	messages := b.messages(schema)
	var out []forms.ValidatorFn
	if required {
		out = append(out, validation.Required(messages[forms.KeyRequired]))
	}
	if strings.EqualFold(schema.Format, "email") {
		out = append(out, validation.Email(messages[forms.KeyEmail]))
	}
	if schema.MinLength > 0 {
		out = append(out, validation.MinLength(int(schema.MinLength), messages[forms.KeyMinLength]))
	}
	if schema.MaxLength != nil {
		out = append(out, validation.MaxLength(int(*schema.MaxLength), messages[forms.KeyMaxLength]))
	}
	if schema.Min != nil {
		out = append(out, validation.Min(*schema.Min, messages[forms.KeyMin]))
	}
	if schema.Max != nil {
		out = append(out, validation.Max(*schema.Max, messages[forms.KeyMax]))
	}
	if schema.Pattern != "" {
		// JSON Schema patterns match anywhere in the value, so the expression
		// is compiled as written instead of going through validation.Pattern.
		re, err := regexp.Compile(schema.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern of %q: %w", ErrUnsupportedSchema, path, err)
		}
		out = append(out, patternValidator(validation.Value(re), validation.Text[*regexp.Regexp](messages[forms.KeyPattern])))
	}
	return out, nil
}

// messages merges the configured defaults with the x-messages extension of
// schema, the extension winning per key.
func (b *builder) messages(schema *openapi3.Schema) map[string]string {
	out := make(map[string]string, len(b.cfg.messages))
	for key, message := range b.cfg.messages {
		out[key] = message
	}
	raw, ok := schema.Extensions[messagesExtensionKey].(map[string]any)
	if !ok {
		return out
	}
	for key, value := range raw {
		if message, ok := value.(string); ok && strings.TrimSpace(message) != "" {
			out[strings.ToLower(strings.TrimSpace(key))] = message
		}
	}
	return out
}

func isObject(schema *openapi3.Schema) bool {
	if schema == nil {
		return false
	}
	if schema.Type.Is("object") {
		return true
	}
	return schema.Type == nil && len(schema.Properties) > 0
}

// orderedProperties sorts property names by their x-order extension, then by
// name. Properties without x-order come after ordered ones.
func orderedProperties(schema *openapi3.Schema) []string {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	order := func(name string) (float64, bool) {
		property := schema.Properties[name]
		if property == nil || property.Value == nil {
			return 0, false
		}
		switch v := property.Value.Extensions[orderExtensionKey].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		}
		return 0, false
	}
	sort.SliceStable(names, func(i, j int) bool {
		left, leftOK := order(names[i])
		right, rightOK := order(names[j])
		switch {
		case leftOK && rightOK && left != right:
			return left < right
		case leftOK != rightOK:
			return leftOK
		}
		return names[i] < names[j]
	})
	return names
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
