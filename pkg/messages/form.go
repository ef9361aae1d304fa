package messages

import (
	"sync"

	"github.com/goliatone/go-formvalidate/pkg/event"
	"github.com/goliatone/go-formvalidate/pkg/forms"
)

// Form tracks the submission of a root group and notifies the components
// displaying its messages.
type Form struct {
	group       *forms.FormGroup
	submissions *event.Stream[struct{}]

	mu        sync.RWMutex
	submitted bool
}

// NewForm wraps group.
func NewForm(group *forms.FormGroup) *Form {
	return &Form{
		group:       group,
		submissions: event.NewStream[struct{}](),
	}
}

// Group returns the root group.
func (f *Form) Group() *forms.FormGroup {
	return f.group
}

// Submissions emits on every Submit call.
func (f *Form) Submissions() *event.Stream[struct{}] {
	return f.submissions
}

// Submit marks the form as submitted and notifies subscribers. It reports
// whether the group is valid.
func (f *Form) Submit() bool {
	f.mu.Lock()
	f.submitted = true
	f.mu.Unlock()

	f.submissions.Emit(struct{}{})
	return f.group == nil || f.group.Valid()
}

// IsSubmitted reports whether Submit was called since the last Reset.
func (f *Form) IsSubmitted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitted
}

// Reset clears the submitted flag and resets the group.
func (f *Form) Reset() {
	f.mu.Lock()
	f.submitted = false
	f.mu.Unlock()

	if f.group != nil {
		f.group.Reset()
	}
}
