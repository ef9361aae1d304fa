package forms

import "github.com/goliatone/go-formvalidate/pkg/event"

// Status is the validity state of a control.
type Status string

const (
	StatusValid    Status = "VALID"
	StatusInvalid  Status = "INVALID"
	StatusDisabled Status = "DISABLED"
)

// Control is a node in a form tree: a FormControl leaf, or a FormGroup or
// FormArray composite.
type Control interface {
	// Parent returns the composite holding this control, or nil for a root.
	Parent() Container
	Value() any
	// Errors returns the failures reported by the control's own validators
	// (or set explicitly through SetErrors).
	Errors() Errors
	Status() Status
	Valid() bool
	Invalid() bool
	Enabled() bool
	Touched() bool
	Dirty() bool

	MarkAsTouched()
	MarkAsUntouched()
	MarkAsDirty()
	MarkAsPristine()
	MarkAllAsTouched()

	// SetValidators replaces the control's validators. Validity is not
	// recomputed until the next UpdateValueAndValidity call.
	SetValidators(validators ...ValidatorFn)
	// SetErrors overrides the current errors without running validators and
	// refreshes the status of the control and its ancestors.
	SetErrors(errs Errors)
	// UpdateValueAndValidity re-runs validators, emits a status change and
	// propagates the update to the parent.
	UpdateValueAndValidity()
	StatusChanges() *event.Stream[Status]

	Disable()
	Enable()

	setParent(parent Container)
	refresh(emit bool)
	patch(value any)
}

// Container is a composite control whose children are addressed by key.
type Container interface {
	Control
	// Indexed reports whether children are addressed by numeric position
	// (FormArray) rather than by name (FormGroup).
	Indexed() bool
	// Keys returns child keys in order. Indexed containers return "0".."n-1".
	Keys() []string
	Child(key string) (Control, bool)
	// KeyOf returns the key under which child is registered.
	KeyOf(child Control) (string, bool)
}

type base struct {
	self          Control
	parent        Container
	validator     ValidatorFn
	errors        Errors
	status        Status
	touched       bool
	dirty         bool
	disabled      bool
	statusChanges *event.Stream[Status]
}

func newBase(self Control, validators []ValidatorFn) base {
	return base{
		self:          self,
		validator:     Compose(validators...),
		status:        StatusValid,
		statusChanges: event.NewStream[Status](),
	}
}

func (b *base) Parent() Container {
	return b.parent
}

func (b *base) Errors() Errors {
	return b.errors
}

func (b *base) Status() Status {
	return b.status
}

func (b *base) Valid() bool {
	return b.status == StatusValid
}

func (b *base) Invalid() bool {
	return b.status == StatusInvalid
}

func (b *base) Enabled() bool {
	return !b.disabled
}

func (b *base) Touched() bool {
	return b.touched
}

func (b *base) Dirty() bool {
	return b.dirty
}

func (b *base) MarkAsTouched() {
	b.touched = true
	if b.parent != nil {
		b.parent.MarkAsTouched()
	}
}

func (b *base) MarkAsUntouched() {
	b.touched = false
}

func (b *base) MarkAsDirty() {
	b.dirty = true
	if b.parent != nil {
		b.parent.MarkAsDirty()
	}
}

func (b *base) MarkAsPristine() {
	b.dirty = false
}

func (b *base) SetValidators(validators ...ValidatorFn) {
	b.validator = Compose(validators...)
}

func (b *base) StatusChanges() *event.Stream[Status] {
	return b.statusChanges
}

func (b *base) setParent(parent Container) {
	b.parent = parent
}

func (b *base) SetErrors(errs Errors) {
	if errs.Empty() {
		errs = nil
	}
	b.errors = errs
	b.self.refresh(true)
	b.refreshAncestors()
}

func (b *base) Disable() {
	b.disabled = true
	b.errors = nil
	b.status = StatusDisabled
	b.statusChanges.Emit(b.status)
	b.refreshAncestors()
}

func (b *base) Enable() {
	b.disabled = false
	b.self.UpdateValueAndValidity()
}

// validate runs the control's own validators.
func (b *base) validate() {
	if b.disabled {
		b.errors = nil
		return
	}
	if b.validator == nil {
		b.errors = nil
		return
	}
	errs := b.validator(b.self)
	if errs.Empty() {
		errs = nil
	}
	b.errors = errs
}

func (b *base) refreshAncestors() {
	for parent := b.parent; parent != nil; parent = parent.Parent() {
		parent.refresh(true)
	}
}
