// Package validation attaches human-readable messages to form validators and
// selects the single failure to report for a control.
//
// The validators mirror the built-in ones in package forms but accept an
// optional message:
//
//	name := forms.NewControl("", validation.Compose(
//		validation.Required("A name is required"),
//		validation.MinLengthFunc(validation.Value(3), func(n int) string {
//			return fmt.Sprintf("Use at least %d characters", n)
//		}),
//	))
//
// When a validator fails, the message is stored in the failure payload under
// the "message" key. FirstError picks the failure that was reported first.
// Failures without a message need a custom display registered with the
// message components.
package validation
