package forms

import "strconv"

// FormArray is a composite whose children are addressed by position.
type FormArray struct {
	composite
	controls []Control
}

var _ Container = (*FormArray)(nil)

// NewArray constructs an array from controls. Nil entries are skipped.
func NewArray(controls ...Control) *FormArray {
	a := &FormArray{}
	a.composite = composite{children: a.orderedChildren}
	a.base = newBase(a, nil)
	for _, control := range controls {
		if control == nil {
			continue
		}
		a.controls = append(a.controls, control)
		attach(a, control)
	}
	a.validate()
	a.refresh(false)
	return a
}

// Indexed reports true: array children are addressed by position.
func (a *FormArray) Indexed() bool {
	return true
}

// Len reports the number of children.
func (a *FormArray) Len() int {
	return len(a.controls)
}

// At returns the child at index, or nil when out of range.
func (a *FormArray) At(index int) Control {
	if index < 0 || index >= len(a.controls) {
		return nil
	}
	return a.controls[index]
}

// Keys returns the decimal indexes of the children.
func (a *FormArray) Keys() []string {
	keys := make([]string, len(a.controls))
	for idx := range a.controls {
		keys[idx] = strconv.Itoa(idx)
	}
	return keys
}

// Child resolves a decimal index.
func (a *FormArray) Child(key string) (Control, bool) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 || idx >= len(a.controls) {
		return nil, false
	}
	return a.controls[idx], true
}

// KeyOf returns the decimal index of child.
func (a *FormArray) KeyOf(child Control) (string, bool) {
	for idx, control := range a.controls {
		if control == child {
			return strconv.Itoa(idx), true
		}
	}
	return "", false
}

// Value returns the values of the enabled children in order.
func (a *FormArray) Value() any {
	out := make([]any, 0, len(a.controls))
	for _, control := range a.controls {
		if !control.Enabled() && !a.disabled {
			continue
		}
		out = append(out, control.Value())
	}
	return out
}

// Push appends control and re-validates.
func (a *FormArray) Push(control Control) {
	if control == nil {
		return
	}
	a.controls = append(a.controls, control)
	attach(a, control)
	a.UpdateValueAndValidity()
}

// Insert places control at index, shifting later children.
func (a *FormArray) Insert(index int, control Control) {
	if control == nil {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(a.controls) {
		index = len(a.controls)
	}
	a.controls = append(a.controls, nil)
	copy(a.controls[index+1:], a.controls[index:])
	a.controls[index] = control
	attach(a, control)
	a.UpdateValueAndValidity()
}

// RemoveAt detaches the child at index.
func (a *FormArray) RemoveAt(index int) {
	if index < 0 || index >= len(a.controls) {
		return
	}
	detach(a.controls[index])
	a.controls = append(a.controls[:index:index], a.controls[index+1:]...)
	a.UpdateValueAndValidity()
}

// PatchValue assigns values positionally; extra values are ignored.
func (a *FormArray) PatchValue(values []any) {
	a.patch(values)
	if a.parent != nil {
		a.parent.UpdateValueAndValidity()
	}
}

func (a *FormArray) patch(value any) {
	values, ok := value.([]any)
	if !ok {
		return
	}
	for idx, raw := range values {
		if idx >= len(a.controls) {
			break
		}
		a.controls[idx].patch(raw)
	}
	a.dirty = true
	a.validate()
	a.refresh(true)
}

func (a *FormArray) orderedChildren() []Control {
	return append([]Control(nil), a.controls...)
}
