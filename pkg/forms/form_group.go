package forms

import (
	"fmt"
	"strings"
)

// Field names a child control when constructing a FormGroup.
type Field struct {
	Name    string
	Control Control
}

// Named pairs a name with a control for NewGroup.
func Named(name string, control Control) Field {
	return Field{Name: name, Control: control}
}

// FormGroup is a composite whose children are addressed by name. Children keep
// the order in which they were added.
type FormGroup struct {
	composite
	keys     []string
	controls map[string]Control
}

var _ Container = (*FormGroup)(nil)

// NewGroup constructs a group from the supplied fields. Blank names and nil
// controls are ignored; a repeated name keeps the first control.
func NewGroup(fields ...Field) *FormGroup {
	g := &FormGroup{controls: make(map[string]Control, len(fields))}
	g.composite = composite{children: g.orderedChildren}
	g.base = newBase(g, nil)
	for _, field := range fields {
		g.register(field.Name, field.Control)
	}
	g.validate()
	g.refresh(false)
	return g
}

// NewGroupWithValidators is NewGroup with group-level validators.
func NewGroupWithValidators(validators []ValidatorFn, fields ...Field) *FormGroup {
	g := NewGroup(fields...)
	g.SetValidators(validators...)
	g.validate()
	g.refresh(false)
	return g
}

// Indexed reports false: group children are addressed by name.
func (g *FormGroup) Indexed() bool {
	return false
}

// Keys returns child names in insertion order.
func (g *FormGroup) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Child returns the control registered under name.
func (g *FormGroup) Child(name string) (Control, bool) {
	control, ok := g.controls[name]
	return control, ok
}

// Get is Child without the presence flag.
func (g *FormGroup) Get(name string) Control {
	return g.controls[name]
}

// Contains reports whether name is registered and enabled.
func (g *FormGroup) Contains(name string) bool {
	control, ok := g.controls[name]
	return ok && control.Enabled()
}

// KeyOf returns the name under which child is registered.
func (g *FormGroup) KeyOf(child Control) (string, bool) {
	for _, key := range g.keys {
		if g.controls[key] == child {
			return key, true
		}
	}
	return "", false
}

// Value returns the values of enabled children keyed by name.
func (g *FormGroup) Value() any {
	out := make(map[string]any, len(g.keys))
	for _, key := range g.keys {
		control := g.controls[key]
		if !control.Enabled() && !g.disabled {
			continue
		}
		out[key] = control.Value()
	}
	return out
}

// AddControl registers control under name and re-validates the group. When
// name is already taken the existing control is returned unchanged.
func (g *FormGroup) AddControl(name string, control Control) Control {
	if existing, ok := g.controls[strings.TrimSpace(name)]; ok {
		return existing
	}
	if !g.register(name, control) {
		return nil
	}
	g.UpdateValueAndValidity()
	return control
}

// SetControl replaces (or adds) the control registered under name.
func (g *FormGroup) SetControl(name string, control Control) {
	name = strings.TrimSpace(name)
	if existing, ok := g.controls[name]; ok {
		detach(existing)
		if control == nil {
			g.removeKey(name)
		} else {
			g.controls[name] = control
			attach(g, control)
		}
		g.UpdateValueAndValidity()
		return
	}
	g.AddControl(name, control)
}

// RemoveControl detaches the control registered under name.
func (g *FormGroup) RemoveControl(name string) {
	name = strings.TrimSpace(name)
	control, ok := g.controls[name]
	if !ok {
		return
	}
	detach(control)
	g.removeKey(name)
	g.UpdateValueAndValidity()
}

// PatchValue assigns values to the children named in values. Unknown names
// are ignored.
func (g *FormGroup) PatchValue(values map[string]any) {
	g.patch(values)
	if g.parent != nil {
		g.parent.UpdateValueAndValidity()
	}
}

// Reset clears touched and dirty state across the group and re-validates.
func (g *FormGroup) Reset() {
	g.MarkAsUntouched()
	g.MarkAsPristine()
	g.UpdateValueAndValidity()
}

func (g *FormGroup) patch(value any) {
	values, ok := value.(map[string]any)
	if !ok {
		return
	}
	for _, key := range g.keys {
		raw, present := values[key]
		if !present {
			continue
		}
		g.controls[key].patch(raw)
	}
	g.dirty = true
	g.validate()
	g.refresh(true)
}

func (g *FormGroup) register(name string, control Control) bool {
	name = strings.TrimSpace(name)
	if name == "" || control == nil {
		return false
	}
	if _, exists := g.controls[name]; exists {
		return false
	}
	g.keys = append(g.keys, name)
	g.controls[name] = control
	attach(g, control)
	return true
}

func (g *FormGroup) removeKey(name string) {
	delete(g.controls, name)
	for idx, key := range g.keys {
		if key == name {
			g.keys = append(g.keys[:idx:idx], g.keys[idx+1:]...)
			break
		}
	}
}

func (g *FormGroup) orderedChildren() []Control {
	out := make([]Control, 0, len(g.keys))
	for _, key := range g.keys {
		out = append(out, g.controls[key])
	}
	return out
}

// String renders a short description, handy in test failures.
func (g *FormGroup) String() string {
	return fmt.Sprintf("FormGroup%v", g.keys)
}
