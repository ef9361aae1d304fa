package messages

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports a component declared in a way that can never
	// work, such as an empty set of controls.
	ErrConfiguration = errors.New("messages: configuration error")
	// ErrConsistency reports a message bound to a control its parent does not
	// declare.
	ErrConsistency = errors.New("messages: consistency error")
	// ErrUnresolvableDisplay reports a failure without a message that no
	// custom message or catalogue entry can display.
	ErrUnresolvableDisplay = errors.New("messages: no suitable validation message")

	// ErrNoContainer is returned when a control is referenced by name but no
	// container was supplied to resolve it.
	ErrNoContainer = fmt.Errorf("%w: control names need a container (use WithContainer)", ErrConfiguration)
	// ErrControlMissing is returned when a named control does not exist.
	ErrControlMissing = fmt.Errorf("%w: control not found", ErrConfiguration)
	// ErrNotFormControl is returned when a name resolves to a group or array.
	ErrNotFormControl = fmt.Errorf("%w: control is not a FormControl", ErrConfiguration)
)
