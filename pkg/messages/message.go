package messages

import (
	"sync"

	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/validation"
)

// MessageOption configures a ValidationMessage.
type MessageOption func(*ValidationMessage)

// For binds the message to control. Required when the parent component
// displays more than one control.
func For(control *forms.FormControl) MessageOption {
	return func(m *ValidationMessage) {
		m.target = ForControl(control)
	}
}

// ForNamed binds the message to the control registered under name in the
// parent component's container.
func ForNamed(name string) MessageOption {
	return func(m *ValidationMessage) {
		m.target = ForName(name)
	}
}

// WithTemplate sets the message template. The failure payload is the
// template context, so "At least {{ requiredLength }} characters" works for
// minlength failures.
func WithTemplate(tpl string) MessageOption {
	return func(m *ValidationMessage) {
		m.template = tpl
	}
}

// ValidationMessage is a custom display for one error key, used for failures
// whose validators carry no message or when the text needs the payload.
type ValidationMessage struct {
	key      string
	target   Target
	template string

	mu      sync.RWMutex
	control *forms.FormControl
	shown   *validation.ValidationError
}

// NewMessage constructs a custom message for key.
func NewMessage(key string, options ...MessageOption) *ValidationMessage {
	m := &ValidationMessage{key: key, target: NoTarget()}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	m.control = m.target.control
	return m
}

// Key returns the error key the message handles.
func (m *ValidationMessage) Key() string {
	return m.key
}

// Template returns the message template.
func (m *ValidationMessage) Template() string {
	return m.template
}

// For returns the bound control, or nil when the message handles any
// control of its parent.
func (m *ValidationMessage) For() *forms.FormControl {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.control
}

// CanHandle reports whether the message displays err.
func (m *ValidationMessage) CanHandle(err *validation.ValidationError) bool {
	if err == nil {
		return false
	}
	control := m.For()
	if control != nil && err.Control != forms.Control(control) {
		return false
	}
	return err.Key == m.key
}

// Show displays err.
func (m *ValidationMessage) Show(err *validation.ValidationError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = err
}

// Reset hides the message.
func (m *ValidationMessage) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = nil
}

// Visible reports whether an error is shown.
func (m *ValidationMessage) Visible() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shown != nil
}

// Shown returns the displayed error, or nil.
func (m *ValidationMessage) Shown() *validation.ValidationError {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shown
}

// Context returns the payload of the displayed error, or nil.
func (m *ValidationMessage) Context() forms.Payload {
	shown := m.Shown()
	if shown == nil {
		return nil
	}
	return shown.Payload
}

// Render renders the displayed error through renderer. Without a template
// it falls back to the failure's own message and then to the key. A hidden
// message renders as "".
func (m *ValidationMessage) Render(renderer Renderer, locale string) (string, error) {
	shown := m.Shown()
	if shown == nil {
		return "", nil
	}
	if m.template == "" || renderer == nil {
		if shown.HasMessage() {
			return shown.Message(), nil
		}
		if m.template != "" {
			return m.template, nil
		}
		return shown.Key, nil
	}
	return renderer.RenderMessage(locale, m.template, templateData(shown, locale))
}

// bind resolves a name target against container.
func (m *ValidationMessage) bind(container forms.Container) error {
	if m.target.Kind() != TargetName {
		return nil
	}
	control, err := controlFromContainer(container, m.target.name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.control = control
	m.mu.Unlock()
	return nil
}

func templateData(err *validation.ValidationError, locale string) map[string]any {
	data := make(map[string]any, len(err.Payload)+4)
	for key, value := range err.Payload {
		data[key] = value
	}
	data["key"] = err.Key
	data["locale"] = locale
	if err.Control != nil {
		data["value"] = err.Control.Value()
		if path, pathErr := forms.ControlPath(err.Control); pathErr == nil {
			data["path"] = path
		}
	}
	return data
}
