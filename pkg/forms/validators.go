package forms

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Error keys reported by the built-in validators.
const (
	KeyRequired  = "required"
	KeyEmail     = "email"
	KeyMin       = "min"
	KeyMax       = "max"
	KeyMinLength = "minlength"
	KeyMaxLength = "maxlength"
	KeyPattern   = "pattern"
)

// ValidatorFn inspects a control and returns the failures it finds, or nil.
type ValidatorFn func(control Control) Errors

// NullValidator never reports a failure.
func NullValidator(Control) Errors {
	return nil
}

// Compose merges validators into one that returns the union of their errors
// in validator order. Nil validators are skipped; with none left the result
// is nil.
func Compose(validators ...ValidatorFn) ValidatorFn {
	present := make([]ValidatorFn, 0, len(validators))
	for _, validator := range validators {
		if validator != nil {
			present = append(present, validator)
		}
	}
	switch len(present) {
	case 0:
		return nil
	case 1:
		return present[0]
	}
	return func(control Control) Errors {
		var out Errors
		for _, validator := range present {
			out = out.Merge(validator(control))
		}
		if out.Empty() {
			return nil
		}
		return out
	}
}

// Required fails when the value is nil, an empty string, or an empty slice,
// array or map.
func Required(control Control) Errors {
	if IsEmptyValue(control.Value()) {
		return NewErrors(KeyRequired, Payload{})
	}
	return nil
}

// RequiredTrue fails unless the value is the boolean true. It reports under
// the "required" key.
func RequiredTrue(control Control) Errors {
	if value, ok := control.Value().(bool); ok && value {
		return nil
	}
	return NewErrors(KeyRequired, Payload{})
}

const (
	maxEmailLength      = 254
	maxEmailLocalLength = 64
)

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Email fails when a non-empty value is not a plausible e-mail address.
func Email(control Control) Errors {
	value := control.Value()
	if IsEmptyValue(value) {
		return nil
	}
	text, ok := value.(string)
	if ok && validEmail(text) {
		return nil
	}
	return NewErrors(KeyEmail, Payload{})
}

func validEmail(text string) bool {
	if len(text) > maxEmailLength {
		return false
	}
	at := strings.LastIndexByte(text, '@')
	if at <= 0 || at > maxEmailLocalLength {
		return false
	}
	return emailPattern.MatchString(text)
}

// Min fails when a numeric value is below min. Empty, non-numeric and NaN
// values pass.
func Min(min float64) ValidatorFn {
	return func(control Control) Errors {
		actual, ok := numericValue(control.Value())
		if !ok || math.IsNaN(actual) || actual >= min {
			return nil
		}
		return NewErrors(KeyMin, Payload{"min": min, "actual": actual})
	}
}

// Max fails when a numeric value is above max. Empty, non-numeric and NaN
// values pass.
func Max(max float64) ValidatorFn {
	return func(control Control) Errors {
		actual, ok := numericValue(control.Value())
		if !ok || math.IsNaN(actual) || actual <= max {
			return nil
		}
		return NewErrors(KeyMax, Payload{"max": max, "actual": actual})
	}
}

// MinLength fails when a string, slice or map value is shorter than length.
// Empty values pass; combine with Required to reject them.
func MinLength(length int) ValidatorFn {
	return func(control Control) Errors {
		actual, ok := valueLength(control.Value())
		if !ok || actual == 0 || actual >= length {
			return nil
		}
		return NewErrors(KeyMinLength, Payload{"requiredLength": length, "actualLength": actual})
	}
}

// MaxLength fails when a string, slice or map value is longer than length.
func MaxLength(length int) ValidatorFn {
	return func(control Control) Errors {
		actual, ok := valueLength(control.Value())
		if !ok || actual <= length {
			return nil
		}
		return NewErrors(KeyMaxLength, Payload{"requiredLength": length, "actualLength": actual})
	}
}

// Pattern fails when a non-empty value does not match expr. The expression is
// anchored at both ends when it is not already. An empty expr yields
// NullValidator; an invalid one panics, like regexp.MustCompile.
func Pattern(expr string) ValidatorFn {
	if expr == "" {
		return NullValidator
	}
	anchored := expr
	if !strings.HasPrefix(anchored, "^") {
		anchored = "^" + anchored
	}
	if !strings.HasSuffix(anchored, "$") {
		anchored += "$"
	}
	return PatternRegexp(regexp.MustCompile(anchored))
}

// PatternRegexp is Pattern for a precompiled expression, used as-is.
func PatternRegexp(re *regexp.Regexp) ValidatorFn {
	if re == nil {
		return NullValidator
	}
	source := re.String()
	return func(control Control) Errors {
		value := control.Value()
		if IsEmptyValue(value) {
			return nil
		}
		text := stringValue(value)
		if re.MatchString(text) {
			return nil
		}
		return NewErrors(KeyPattern, Payload{"requiredPattern": source, "actualValue": text})
	}
}

// IsEmptyValue reports whether value counts as "no input": nil, an empty
// string, or an empty slice, array or map.
func IsEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	if text, ok := value.(string); ok {
		return text == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func valueLength(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	if text, ok := value.(string); ok {
		return utf8.RuneCountInString(text), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func numericValue(value any) (float64, bool) {
	if IsEmptyValue(value) {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
