package validation

import "github.com/goliatone/go-formvalidate/pkg/forms"

var (
	requiredValidator     = WrapNoArgument(forms.Required, forms.KeyRequired)
	requiredTrueValidator = WrapNoArgument(forms.RequiredTrue, forms.KeyRequired)
	emailValidator        = WrapNoArgument(forms.Email, forms.KeyEmail)
	minValidator          = WrapSingleArgument(forms.Min, forms.KeyMin)
	maxValidator          = WrapSingleArgument(forms.Max, forms.KeyMax)
	minLengthValidator    = WrapSingleArgument(forms.MinLength, forms.KeyMinLength)
	maxLengthValidator    = WrapSingleArgument(forms.MaxLength, forms.KeyMaxLength)
	patternValidator      = WrapSingleArgument(forms.Pattern, forms.KeyPattern)
)

// Compose merges validators; see forms.Compose.
func Compose(validators ...forms.ValidatorFn) forms.ValidatorFn {
	return forms.Compose(validators...)
}

// Null never fails.
func Null(forms.Control) forms.Errors {
	return nil
}

// Required requires a non-empty value. Without a message, a custom message
// display must handle the "required" key.
func Required(message ...string) forms.ValidatorFn {
	return requiredValidator(staticMessage(message))
}

// RequiredTrue requires the value to be true, reporting under "required".
func RequiredTrue(message ...string) forms.ValidatorFn {
	return requiredTrueValidator(staticMessage(message))
}

// Email requires a plausible e-mail address.
func Email(message ...string) forms.ValidatorFn {
	return emailValidator(staticMessage(message))
}

// Min requires a numeric value greater than or equal to min.
func Min(min float64, message ...string) forms.ValidatorFn {
	return minValidator(Value(min), Text[float64](firstMessage(message)))
}

// MinFunc is Min with a deferred limit and a message built from it.
func MinFunc(min Arg[float64], message MessageFunc[float64]) forms.ValidatorFn {
	return minValidator(min, message)
}

// Max requires a numeric value less than or equal to max.
func Max(max float64, message ...string) forms.ValidatorFn {
	return maxValidator(Value(max), Text[float64](firstMessage(message)))
}

// MaxFunc is Max with a deferred limit and a message built from it.
func MaxFunc(max Arg[float64], message MessageFunc[float64]) forms.ValidatorFn {
	return maxValidator(max, message)
}

// MinLength requires a value of at least length characters or items.
func MinLength(length int, message ...string) forms.ValidatorFn {
	return minLengthValidator(Value(length), Text[int](firstMessage(message)))
}

// MinLengthFunc is MinLength with a deferred length and a message built from
// it.
func MinLengthFunc(length Arg[int], message MessageFunc[int]) forms.ValidatorFn {
	return minLengthValidator(length, message)
}

// MaxLength requires a value of at most length characters or items.
func MaxLength(length int, message ...string) forms.ValidatorFn {
	return maxLengthValidator(Value(length), Text[int](firstMessage(message)))
}

// MaxLengthFunc is MaxLength with a deferred length and a message built from
// it.
func MaxLengthFunc(length Arg[int], message MessageFunc[int]) forms.ValidatorFn {
	return maxLengthValidator(length, message)
}

// Pattern requires the value to match expr, anchored at both ends.
func Pattern(expr string, message ...string) forms.ValidatorFn {
	return patternValidator(Value(expr), Text[string](firstMessage(message)))
}

// PatternFunc is Pattern with a deferred expression.
func PatternFunc(expr Arg[string], message ...string) forms.ValidatorFn {
	return patternValidator(expr, Text[string](firstMessage(message)))
}

func firstMessage(message []string) string {
	for _, msg := range message {
		if msg != "" {
			return msg
		}
	}
	return ""
}

func staticMessage(message []string) func() string {
	msg := firstMessage(message)
	if msg == "" {
		return nil
	}
	return func() string { return msg }
}
