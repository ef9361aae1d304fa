package messages

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-formvalidate/pkg/dispatch"
	"github.com/goliatone/go-formvalidate/pkg/event"
	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/render"
	"github.com/goliatone/go-formvalidate/pkg/validation"
)

// Source identifies where a displayed message text came from.
type Source string

const (
	SourceValidator Source = "validator"
	SourceCustom    Source = "custom"
	SourceCatalog   Source = "catalog"
)

// Message is the rendered first error of one displayed control.
type Message struct {
	Control *forms.FormControl
	Path    string
	Key     string
	Text    string
	Source  Source
}

// Option configures ValidationMessages.
type Option func(*ValidationMessages)

// WithContainer sets the group or array control names resolve against.
func WithContainer(container forms.Container) Option {
	return func(m *ValidationMessages) {
		m.container = container
	}
}

// WithForm attaches the component to a form, making its submission visible
// to the display rule. It also sets the container to the form's group unless
// one is given explicitly.
func WithForm(form *Form) Option {
	return func(m *ValidationMessages) {
		m.form = form
	}
}

// WithConfig replaces the default configuration.
func WithConfig(config Config) Option {
	return func(m *ValidationMessages) {
		m.config = config
	}
}

// WithMessage adds custom messages.
func WithMessage(children ...*ValidationMessage) Option {
	return func(m *ValidationMessages) {
		m.children = append(m.children, children...)
	}
}

// ValidationMessages shows the first error of each control it is declared
// for. Failures whose validators attached a message display that message;
// other failures need a custom ValidationMessage child or a catalogue entry.
//
// The component reacts to status changes of its controls but holds those
// reactions back until Init is called, once its children are in place.
type ValidationMessages struct {
	container forms.Container
	form      *Form
	config    Config
	renderer  Renderer

	registry *dispatch.Registry[*forms.FormControl]
	submit   event.Subscription

	mu          sync.Mutex
	controls    []*forms.FormControl
	children    []*ValidationMessage
	initialized bool
	failures    []error
}

// New constructs a component. Controls are declared with SetFor.
func New(options ...Option) *ValidationMessages {
	m := &ValidationMessages{config: DefaultConfig()}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	m.config = m.config.withDefaults()
	if m.container == nil && m.form != nil && m.form.Group() != nil {
		m.container = m.form.Group()
	}
	m.renderer = m.config.Renderer
	if m.renderer == nil {
		var renderOptions []render.Option
		if translator, ok := m.config.Catalog.(render.Translator); ok {
			renderOptions = append(renderOptions, render.WithTranslator(translator))
		}
		m.renderer = render.MustNewMessageRenderer(renderOptions...)
	}
	m.registry = dispatch.New(m.handleStatusChange)
	if m.form != nil {
		m.submit = m.form.Submissions().Listen(m.handleSubmit)
	}
	return m
}

// MustNew is New followed by SetFor, panicking on error.
func MustNew(target Target, options ...Option) *ValidationMessages {
	m := New(options...)
	if err := m.SetFor(target); err != nil {
		panic(err)
	}
	return m
}

// SetFor declares the controls to display messages for, replacing any
// previous declaration. An empty declaration is a configuration error and is
// rejected before anything else happens. After Init the custom messages are
// checked against the new controls first; on failure the previous
// declaration stays in effect. Errors raised while showing the current state
// of the controls are returned.
func (m *ValidationMessages) SetFor(target Target) error {
	controls, err := target.resolve(m.container)
	if err != nil {
		return err
	}
	if len(controls) == 0 {
		return fmt.Errorf("%w: a validation messages component does not allow declaring an empty set of controls", ErrConfiguration)
	}

	m.mu.Lock()
	initialized := m.initialized
	m.mu.Unlock()

	if initialized {
		if err := m.validateChildren(controls); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.controls = controls
	mark := len(m.failures)
	m.mu.Unlock()

	m.config.Logger.Debug("messages: controls declared", "count", len(controls))

	m.registry.UnsubscribeAll()
	m.registry.Subscribe(controls, statusChanges, true)
	return m.takeFailures(mark)
}

// AddMessage adds custom messages. After Init the children are validated
// and every control is re-evaluated so the new messages can take effect.
func (m *ValidationMessages) AddMessage(children ...*ValidationMessage) error {
	m.mu.Lock()
	m.children = append(m.children, children...)
	initialized := m.initialized
	m.mu.Unlock()

	if !initialized {
		return nil
	}
	if err := m.validateChildren(m.Controls()); err != nil {
		return err
	}
	return m.Refresh()
}

// RemoveMessage removes a custom message.
func (m *ValidationMessages) RemoveMessage(child *ValidationMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.children = slices.DeleteFunc(m.children, func(item *ValidationMessage) bool {
		return item == child
	})
}

// Init signals that the custom messages are in place. It validates them,
// then runs every status change reaction held back so far, in order. Errors
// from those reactions are returned. When validation fails the reactions stay
// held back and Init can be called again once the messages are fixed. After a
// successful Init, calling it again is a no-op.
func (m *ValidationMessages) Init() error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return nil
	}
	controls := slices.Clone(m.controls)
	m.mu.Unlock()

	if err := m.validateChildren(controls); err != nil {
		return err
	}

	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return nil
	}
	m.initialized = true
	mark := len(m.failures)
	m.mu.Unlock()

	m.registry.MarkReady()
	return m.takeFailures(mark)
}

// Refresh re-evaluates every declared control and returns the errors raised
// doing so.
func (m *ValidationMessages) Refresh() error {
	m.mu.Lock()
	mark := len(m.failures)
	m.mu.Unlock()

	m.refresh()
	return m.takeFailures(mark)
}

func (m *ValidationMessages) refresh() {
	for _, control := range m.Controls() {
		m.handleStatusChange(control)
	}
}

// Controls returns the declared controls.
func (m *ValidationMessages) Controls() []*forms.FormControl {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.controls)
}

// Children returns the custom messages.
func (m *ValidationMessages) Children() []*ValidationMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.children)
}

// Submitted reports the form submission state, or nil when the component is
// not attached to a form.
func (m *ValidationMessages) Submitted() *bool {
	if m.form == nil {
		return nil
	}
	submitted := m.form.IsSubmitted()
	return &submitted
}

// Displayed reports whether the messages of control are shown under the
// configured display rule.
func (m *ValidationMessages) Displayed(control *forms.FormControl) bool {
	return m.config.DisplayWhen(control, m.Submitted())
}

// IsValid reports whether no displayed control has an error.
func (m *ValidationMessages) IsValid() bool {
	return len(m.Errors()) == 0
}

// Errors returns the first error of every displayed control, in declaration
// order.
func (m *ValidationMessages) Errors() []*validation.ValidationError {
	var out []*validation.ValidationError
	for _, control := range m.Controls() {
		if !m.Displayed(control) {
			continue
		}
		if err := validation.FirstError(control); err != nil {
			out = append(out, err)
		}
	}
	return out
}

// ErrorMessages returns the messages attached by validators to the errors
// returned by Errors. Errors without a message are skipped; use Messages to
// include custom and catalogue messages.
func (m *ValidationMessages) ErrorMessages() []string {
	var out []string
	for _, err := range m.Errors() {
		if err.HasMessage() {
			out = append(out, err.Message())
		}
	}
	return out
}

// Messages renders the text of every error returned by Errors. Validator
// messages come first, then custom messages, then the catalogue.
func (m *ValidationMessages) Messages() ([]Message, error) {
	var out []Message
	for _, err := range m.Errors() {
		msg, renderErr := m.message(err)
		if renderErr != nil {
			return nil, renderErr
		}
		out = append(out, msg)
	}
	return out, nil
}

// Err returns the errors raised by status change reactions since the last
// call, or nil.
func (m *ValidationMessages) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := errors.Join(m.failures...)
	m.failures = nil
	return err
}

// Destroy cancels every subscription.
func (m *ValidationMessages) Destroy() {
	m.registry.UnsubscribeAll()
	if m.submit != nil {
		m.submit.Unsubscribe()
	}
}

func (m *ValidationMessages) message(err *validation.ValidationError) (Message, error) {
	control, _ := err.Control.(*forms.FormControl)
	path, pathErr := forms.ControlPath(err.Control)
	if pathErr != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrConsistency, pathErr)
	}
	msg := Message{Control: control, Path: path, Key: err.Key}

	if err.HasMessage() {
		msg.Text = err.Message()
		msg.Source = SourceValidator
		return msg, nil
	}

	for _, child := range m.Children() {
		if child.CanHandle(err) {
			text, renderErr := m.renderChild(child, err)
			if renderErr != nil {
				return Message{}, renderErr
			}
			msg.Text = text
			msg.Source = SourceCustom
			return msg, nil
		}
	}

	if tpl, ok := m.catalogTemplate(err.Key); ok {
		text, renderErr := m.renderer.RenderMessage(m.config.Locale, tpl, templateData(err, m.config.Locale))
		if renderErr != nil {
			return Message{}, fmt.Errorf("messages: render catalogue message %q: %w", err.Key, renderErr)
		}
		msg.Text = text
		msg.Source = SourceCatalog
		return msg, nil
	}

	return Message{}, unresolvable(err.Key, path)
}

// renderChild renders err through child even when the child has not been
// told to show it yet, which happens before Init.
func (m *ValidationMessages) renderChild(child *ValidationMessage, err *validation.ValidationError) (string, error) {
	if shown := child.Shown(); shown == nil || shown.Control != err.Control || shown.Key != err.Key {
		preview := NewMessage(child.Key(), WithTemplate(child.Template()))
		preview.Show(err)
		child = preview
	}
	text, renderErr := child.Render(m.renderer, m.config.Locale)
	if renderErr != nil {
		return "", fmt.Errorf("messages: render custom message %q: %w", err.Key, renderErr)
	}
	return text, nil
}

func (m *ValidationMessages) catalogTemplate(key string) (string, bool) {
	if m.config.Catalog == nil {
		return "", false
	}
	return m.config.Catalog.Template(m.config.Locale, key)
}

// validateChildren binds named children and checks every child targets one
// of controls, and that children without a control are unambiguous.
func (m *ValidationMessages) validateChildren(controls []*forms.FormControl) error {
	children := m.Children()

	for _, child := range children {
		if err := child.bind(m.container); err != nil {
			return err
		}
		control := child.For()
		if control == nil {
			if len(controls) > 1 {
				return fmt.Errorf("%w: specify the control for which the validation message with key %q should show messages", ErrConfiguration, child.Key())
			}
			continue
		}
		if !slices.Contains(controls, control) {
			return fmt.Errorf("%w: a validation message with key %q attempts to show messages for a control that is not declared in the parent component", ErrConsistency, child.Key())
		}
	}
	return nil
}

// handleStatusChange hides the messages bound to control, then shows its
// first error in the first custom message able to handle it. Failures that
// carry a message need no custom display.
func (m *ValidationMessages) handleStatusChange(control *forms.FormControl) {
	children := m.Children()
	for _, child := range children {
		if bound := child.For(); bound == nil || bound == control {
			child.Reset()
		}
	}

	err := validation.FirstError(control)
	if err == nil || err.HasMessage() {
		return
	}

	for _, child := range children {
		if child.CanHandle(err) {
			child.Show(err)
			m.config.Logger.Debug("messages: custom message shown", "key", err.Key)
			return
		}
	}

	if _, ok := m.catalogTemplate(err.Key); ok {
		return
	}

	path, pathErr := forms.ControlPath(control)
	if pathErr != nil {
		m.fail(fmt.Errorf("%w: %w", ErrConsistency, pathErr))
		return
	}
	m.fail(unresolvable(err.Key, path))
}

func (m *ValidationMessages) handleSubmit() {
	m.config.Logger.Debug("messages: form submitted")
	m.mu.Lock()
	initialized := m.initialized
	m.mu.Unlock()
	if initialized {
		m.refresh()
	}
}

func (m *ValidationMessages) fail(err error) {
	m.config.Logger.Debug("messages: status change failed", "error", err)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, err)
}

// takeFailures removes and returns the failures recorded after mark.
func (m *ValidationMessages) takeFailures(mark int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mark > len(m.failures) {
		mark = len(m.failures)
	}
	err := errors.Join(m.failures[mark:]...)
	m.failures = m.failures[:mark]
	return err
}

func unresolvable(key, path string) error {
	return fmt.Errorf("%w to show the %q error of %q", ErrUnresolvableDisplay, key, path)
}

func statusChanges(control *forms.FormControl) event.Source {
	return control.StatusChanges()
}
