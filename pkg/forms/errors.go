package forms

import "errors"

// MessageKey is the payload property carrying a human-readable message.
const MessageKey = "message"

// ErrControlNotFound reports a structural inconsistency: a control claims a
// parent that does not list it among its children, or a lookup path names a
// child that does not exist.
var ErrControlNotFound = errors.New("forms: control not found in parent")

// Payload describes a single validation failure. Its properties are opaque to
// the form model except for the optional "message" string.
type Payload map[string]any

// Message returns the payload's message property, or "" when it is absent or
// not a string.
func (p Payload) Message() string {
	if p == nil {
		return ""
	}
	msg, _ := p[MessageKey].(string)
	return msg
}

// HasMessage reports whether the payload carries a non-empty message.
// Whitespace counts as a message.
func (p Payload) HasMessage() bool {
	return p.Message() != ""
}

// Clone returns a shallow copy of the payload.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// Failure pairs an error key with its payload.
type Failure struct {
	Key     string
	Payload Payload
}

// Errors is an ordered failure mapping. Keys are unique and keep the order in
// which they were first set. A nil or empty Errors means the control is valid;
// the two are interchangeable.
type Errors []Failure

// NewErrors builds an Errors value from a single key/payload pair.
func NewErrors(key string, payload Payload) Errors {
	return Errors{{Key: key, Payload: payload}}
}

// Len reports the number of failures.
func (e Errors) Len() int {
	return len(e)
}

// Empty reports whether there are no failures.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Get returns the payload stored under key.
func (e Errors) Get(key string) (Payload, bool) {
	for _, failure := range e {
		if failure.Key == key {
			return failure.Payload, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (e Errors) Has(key string) bool {
	_, ok := e.Get(key)
	return ok
}

// First returns the failure that was set first.
func (e Errors) First() (Failure, bool) {
	if len(e) == 0 {
		return Failure{}, false
	}
	return e[0], true
}

// Keys returns the failure keys in insertion order.
func (e Errors) Keys() []string {
	if len(e) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e))
	for _, failure := range e {
		keys = append(keys, failure.Key)
	}
	return keys
}

// Set stores payload under key. An existing key keeps its position and has its
// payload replaced in place; a new key is appended.
func (e Errors) Set(key string, payload Payload) Errors {
	for idx := range e {
		if e[idx].Key == key {
			e[idx].Payload = payload
			return e
		}
	}
	return append(e, Failure{Key: key, Payload: payload})
}

// Delete removes key, preserving the order of the remaining failures.
func (e Errors) Delete(key string) Errors {
	for idx := range e {
		if e[idx].Key == key {
			out := append(Errors(nil), e[:idx]...)
			out = append(out, e[idx+1:]...)
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
	return e
}

// Merge returns the union of e and other. Keys keep their first-seen position;
// payloads from other win.
func (e Errors) Merge(other Errors) Errors {
	if len(other) == 0 {
		return e
	}
	out := e.Clone()
	for _, failure := range other {
		out = out.Set(failure.Key, failure.Payload)
	}
	return out
}

// Clone copies the failure list. Payloads are shared.
func (e Errors) Clone() Errors {
	if len(e) == 0 {
		return nil
	}
	return append(Errors(nil), e...)
}

// Map flattens the failures into an unordered map, mostly for serialisation.
func (e Errors) Map() map[string]Payload {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]Payload, len(e))
	for _, failure := range e {
		out[failure.Key] = failure.Payload
	}
	return out
}
