package forms

// FormControl is a leaf control holding a single value.
type FormControl struct {
	base
	value any
}

var _ Control = (*FormControl)(nil)

// NewControl constructs a leaf control and validates its initial value
// without emitting a status change.
func NewControl(value any, validators ...ValidatorFn) *FormControl {
	c := &FormControl{value: value}
	c.base = newBase(c, validators)
	c.validate()
	c.refresh(false)
	return c
}

// Value returns the current value.
func (c *FormControl) Value() any {
	return c.value
}

// SetValue stores value, marks the control dirty and re-runs validation.
func (c *FormControl) SetValue(value any) {
	c.value = value
	c.MarkAsDirty()
	c.UpdateValueAndValidity()
}

func (c *FormControl) patch(value any) {
	c.value = value
	c.dirty = true
	c.validate()
	c.refresh(true)
}

// Reset restores value and clears the touched and dirty flags.
func (c *FormControl) Reset(value any) {
	c.value = value
	c.touched = false
	c.dirty = false
	c.UpdateValueAndValidity()
}

// MarkAllAsTouched marks the leaf touched.
func (c *FormControl) MarkAllAsTouched() {
	c.MarkAsTouched()
}

// UpdateValueAndValidity re-runs validators and notifies observers, then
// asks the parent to do the same.
func (c *FormControl) UpdateValueAndValidity() {
	c.validate()
	c.refresh(true)
	if c.parent != nil {
		c.parent.UpdateValueAndValidity()
	}
}

func (c *FormControl) refresh(emit bool) {
	switch {
	case c.disabled:
		c.status = StatusDisabled
	case !c.errors.Empty():
		c.status = StatusInvalid
	default:
		c.status = StatusValid
	}
	if emit {
		c.statusChanges.Emit(c.status)
	}
}
