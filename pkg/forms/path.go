package forms

import (
	"fmt"
	"strings"
)

// ControlPath returns the dotted path from the root of control's tree to
// control, e.g. "persons.0.firstName". Array positions render as decimal
// indexes and group children as their names. A root control yields "".
//
// ControlPath fails with ErrControlNotFound when a control's parent does not
// list it among its children.
func ControlPath(control Control) (string, error) {
	if control == nil {
		return "", nil
	}
	parent := control.Parent()
	if parent == nil {
		return "", nil
	}

	path, err := ControlPath(parent)
	if err != nil {
		return "", err
	}

	key, ok := parent.KeyOf(control)
	if !ok {
		if path == "" {
			return "", fmt.Errorf("%w: parent at root has no matching child", ErrControlNotFound)
		}
		return "", fmt.Errorf("%w: parent %q has no matching child", ErrControlNotFound, path)
	}

	if path != "" {
		path += "."
	}
	return path + key, nil
}

// MustControlPath is ControlPath that panics on inconsistent trees.
func MustControlPath(control Control) string {
	path, err := ControlPath(control)
	if err != nil {
		panic(err)
	}
	return path
}

// Root walks parent links up to the top of control's tree.
func Root(control Control) Control {
	if control == nil {
		return nil
	}
	current := control
	for current.Parent() != nil {
		current = current.Parent()
	}
	return current
}

// Lookup resolves a dotted path relative to root. An empty path returns root.
func Lookup(root Control, path string) (Control, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: root is nil", ErrControlNotFound)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return root, nil
	}

	current := root
	walked := ""
	for _, segment := range strings.Split(path, ".") {
		container, ok := current.(Container)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a group or array", ErrControlNotFound, walked)
		}
		child, ok := container.Child(segment)
		if !ok {
			return nil, fmt.Errorf("%w: no child %q under %q", ErrControlNotFound, segment, walked)
		}
		current = child
		walked = joinPath(walked, segment)
	}
	return current, nil
}

// Walk visits root and every descendant depth-first in key order, passing the
// control's path relative to root. Returning false from fn skips the
// control's descendants.
func Walk(root Control, fn func(path string, control Control) bool) {
	if root == nil || fn == nil {
		return
	}
	walk(root, "", fn)
}

func walk(control Control, path string, fn func(string, Control) bool) {
	if !fn(path, control) {
		return
	}
	container, ok := control.(Container)
	if !ok {
		return
	}
	for _, key := range container.Keys() {
		child, ok := container.Child(key)
		if !ok {
			continue
		}
		walk(child, joinPath(path, key), fn)
	}
}

// Leaves returns every FormControl under root in walk order.
func Leaves(root Control) []*FormControl {
	var out []*FormControl
	Walk(root, func(_ string, control Control) bool {
		if leaf, ok := control.(*FormControl); ok {
			out = append(out, leaf)
		}
		return true
	})
	return out
}

func joinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
