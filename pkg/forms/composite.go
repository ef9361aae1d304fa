package forms

// composite holds the behaviour shared by FormGroup and FormArray. children
// returns the current child list in key order.
type composite struct {
	base
	children func() []Control
}

// MarkAllAsTouched marks the composite and every descendant as touched.
func (c *composite) MarkAllAsTouched() {
	c.MarkAsTouched()
	for _, child := range c.children() {
		child.MarkAllAsTouched()
	}
}

// MarkAsUntouched clears the touched flag on the composite and every
// descendant.
func (c *composite) MarkAsUntouched() {
	c.touched = false
	for _, child := range c.children() {
		child.MarkAsUntouched()
	}
}

// MarkAsPristine clears the dirty flag on the composite and every descendant.
func (c *composite) MarkAsPristine() {
	c.dirty = false
	for _, child := range c.children() {
		child.MarkAsPristine()
	}
}

// UpdateValueAndValidity re-runs the composite's own validators, refreshes its
// status from its children and propagates to the parent.
func (c *composite) UpdateValueAndValidity() {
	c.validate()
	c.refresh(true)
	if c.parent != nil {
		c.parent.UpdateValueAndValidity()
	}
}

// Disable disables every descendant and the composite itself.
func (c *composite) Disable() {
	for _, child := range c.children() {
		child.Disable()
	}
	c.base.Disable()
}

// Enable enables every descendant and re-validates.
func (c *composite) Enable() {
	c.disabled = false
	for _, child := range c.children() {
		child.Enable()
	}
	c.UpdateValueAndValidity()
}

func (c *composite) refresh(emit bool) {
	c.status = c.calculateStatus()
	if emit {
		c.statusChanges.Emit(c.status)
	}
}

func (c *composite) calculateStatus() Status {
	if c.disabled {
		return StatusDisabled
	}
	if !c.errors.Empty() {
		return StatusInvalid
	}
	children := c.children()
	enabled := 0
	for _, child := range children {
		if !child.Enabled() {
			continue
		}
		enabled++
		if child.Status() == StatusInvalid {
			return StatusInvalid
		}
	}
	if len(children) > 0 && enabled == 0 {
		return StatusDisabled
	}
	return StatusValid
}

// attach binds child to parent. Callers refresh the parent afterwards.
func attach(parent Container, child Control) {
	child.setParent(parent)
}

func detach(child Control) {
	if child != nil {
		child.setParent(nil)
	}
}
