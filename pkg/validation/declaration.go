package validation

import "github.com/goliatone/go-formvalidate/pkg/forms"

// Arg is a validator argument resolved every time the validator runs, so a
// limit can follow other state (for example a max quantity from stock).
type Arg[T any] func() T

// Value wraps a fixed argument.
func Value[T any](v T) Arg[T] {
	return func() T { return v }
}

// Lazy wraps a function evaluated on each validation run.
func Lazy[T any](fn func() T) Arg[T] {
	if fn == nil {
		return func() T {
			var zero T
			return zero
		}
	}
	return fn
}

// MessageFunc builds a message from a resolved single argument.
type MessageFunc[T any] func(arg T) string

// MessageFunc2 builds a message from two resolved arguments.
type MessageFunc2[T1, T2 any] func(arg1 T1, arg2 T2) string

// Text returns a MessageFunc producing a fixed message. An empty message
// yields nil, which leaves failures without a message.
func Text[T any](message string) MessageFunc[T] {
	if message == "" {
		return nil
	}
	return func(T) string { return message }
}

// WrapNoArgument wraps a validator so failures reported under resultKey
// carry the message returned by message. A nil message leaves failures as the
// validator reported them.
func WrapNoArgument(validator forms.ValidatorFn, resultKey string) func(message func() string) forms.ValidatorFn {
	return func(message func() string) forms.ValidatorFn {
		return func(control forms.Control) forms.Errors {
			return decorate(run(validator, control), resultKey, message)
		}
	}
}

// WrapSingleArgument wraps a validator factory taking one argument. The
// argument is resolved on each run and handed to both the factory and the
// message function.
func WrapSingleArgument[T any](factory func(T) forms.ValidatorFn, resultKey string) func(arg Arg[T], message MessageFunc[T]) forms.ValidatorFn {
	return func(arg Arg[T], message MessageFunc[T]) forms.ValidatorFn {
		return func(control forms.Control) forms.Errors {
			value := resolveArg(arg)
			var resolve func() string
			if message != nil {
				resolve = func() string { return message(value) }
			}
			return decorate(run(factory(value), control), resultKey, resolve)
		}
	}
}

// WrapTwoArgument wraps a validator factory taking two arguments.
func WrapTwoArgument[T1, T2 any](factory func(T1, T2) forms.ValidatorFn, resultKey string) func(arg1 Arg[T1], arg2 Arg[T2], message MessageFunc2[T1, T2]) forms.ValidatorFn {
	return func(arg1 Arg[T1], arg2 Arg[T2], message MessageFunc2[T1, T2]) forms.ValidatorFn {
		return func(control forms.Control) forms.Errors {
			first := resolveArg(arg1)
			second := resolveArg(arg2)
			var resolve func() string
			if message != nil {
				resolve = func() string { return message(first, second) }
			}
			return decorate(run(factory(first, second), control), resultKey, resolve)
		}
	}
}

func resolveArg[T any](arg Arg[T]) T {
	if arg == nil {
		var zero T
		return zero
	}
	return arg()
}

func run(validator forms.ValidatorFn, control forms.Control) forms.Errors {
	if validator == nil {
		return nil
	}
	return validator(control)
}

// decorate sets the message on the resultKey failure. A nil payload is
// replaced by an empty one so the message has somewhere to live.
func decorate(errs forms.Errors, resultKey string, message func() string) forms.Errors {
	if message == nil || errs.Empty() {
		return errs
	}
	payload, ok := errs.Get(resultKey)
	if !ok {
		return errs
	}
	text := message()
	if text == "" {
		return errs
	}
	decorated := payload.Clone()
	if decorated == nil {
		decorated = forms.Payload{}
	}
	decorated[forms.MessageKey] = text
	return errs.Clone().Set(resultKey, decorated)
}
