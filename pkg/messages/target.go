package messages

import (
	"fmt"

	"github.com/goliatone/go-formvalidate/pkg/forms"
)

// TargetKind identifies the variant held by a Target.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetControl
	TargetName
	TargetList
)

// Target names the controls a component displays messages for: nothing, a
// single control, a control looked up by name in the surrounding container,
// or a list mixing both.
type Target struct {
	kind    TargetKind
	control *forms.FormControl
	name    string
	list    []Target
}

// NoTarget is the absent target.
func NoTarget() Target {
	return Target{kind: TargetNone}
}

// ForControl targets a single control.
func ForControl(control *forms.FormControl) Target {
	return Target{kind: TargetControl, control: control}
}

// ForName targets the control registered under name in the container.
func ForName(name string) Target {
	return Target{kind: TargetName, name: name}
}

// ForList targets several controls in order.
func ForList(targets ...Target) Target {
	return Target{kind: TargetList, list: append([]Target(nil), targets...)}
}

// ForControls is ForList for plain controls.
func ForControls(controls ...*forms.FormControl) Target {
	targets := make([]Target, len(controls))
	for i, control := range controls {
		targets[i] = ForControl(control)
	}
	return ForList(targets...)
}

// Kind returns the variant.
func (t Target) Kind() TargetKind {
	return t.kind
}

// resolve flattens t into controls, resolving names against container.
func (t Target) resolve(container forms.Container) ([]*forms.FormControl, error) {
	switch t.kind {
	case TargetNone:
		return nil, nil
	case TargetControl:
		if t.control == nil {
			return nil, fmt.Errorf("%w: nil control", ErrConfiguration)
		}
		return []*forms.FormControl{t.control}, nil
	case TargetName:
		control, err := controlFromContainer(container, t.name)
		if err != nil {
			return nil, err
		}
		return []*forms.FormControl{control}, nil
	case TargetList:
		var out []*forms.FormControl
		for _, item := range t.list {
			controls, err := item.resolve(container)
			if err != nil {
				return nil, err
			}
			out = append(out, controls...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown target kind %d", ErrConfiguration, t.kind)
	}
}

func controlFromContainer(container forms.Container, name string) (*forms.FormControl, error) {
	if container == nil {
		return nil, fmt.Errorf("%w: cannot resolve %q", ErrNoContainer, name)
	}

	child, ok := container.Child(name)
	if !ok {
		path, _ := forms.ControlPath(container)
		if path != "" {
			return nil, fmt.Errorf("%w: there is no control named %q within %q", ErrControlMissing, name, path)
		}
		return nil, fmt.Errorf("%w: there is no control named %q", ErrControlMissing, name)
	}

	control, ok := child.(*forms.FormControl)
	if !ok {
		return nil, fmt.Errorf("%w: the control named %q is a %T; a FormGroup or FormArray was probably referenced by mistake", ErrNotFormControl, name, child)
	}
	return control, nil
}
