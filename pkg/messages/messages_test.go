package messages_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/messages"
	"github.com/goliatone/go-formvalidate/pkg/validation"
)

type personForm struct {
	group      *forms.FormGroup
	firstName  *forms.FormControl
	middleName *forms.FormControl
	lastName   *forms.FormControl
}

func newPersonForm() personForm {
	p := personForm{
		firstName: forms.NewControl("", validation.Required("A first name is required"),
			validation.MinLengthFunc(validation.Value(5), func(n int) string {
				return "First name needs to be at least 5 characters long"
			})),
		middleName: forms.NewControl("", validation.Required("A middle name is required")),
		lastName: forms.NewControl("", validation.Required("A last name is required"),
			validation.MinLengthFunc(validation.Value(5), func(n int) string {
				return "Last name needs to be at least 5 characters long"
			})),
	}
	p.group = forms.NewGroup(
		forms.Named("firstName", p.firstName),
		forms.Named("middleName", p.middleName),
		forms.Named("lastName", p.lastName),
	)
	return p
}

func TestSetForRejectsEmptyDeclaration(t *testing.T) {
	p := newPersonForm()
	component := messages.New(messages.WithContainer(p.group))

	for _, target := range []messages.Target{messages.ForList(), messages.NoTarget(), messages.ForControls()} {
		err := component.SetFor(target)
		if !errors.Is(err, messages.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	}
	if len(component.Controls()) != 0 {
		t.Fatalf("expected no controls to be declared")
	}
}

func TestSetForAcceptsTargets(t *testing.T) {
	p := newPersonForm()
	component := messages.New(messages.WithContainer(p.group))

	targets := []messages.Target{
		messages.ForName("firstName"),
		messages.ForControl(p.firstName),
		messages.ForList(messages.ForControl(p.firstName), messages.ForName("middleName"), messages.ForControl(p.lastName)),
	}
	for _, target := range targets {
		if err := component.SetFor(target); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	controls := component.Controls()
	if len(controls) != 3 || controls[1] != p.middleName {
		t.Fatalf("expected names to resolve in order, got %v", controls)
	}
}

func TestSetForNameResolutionErrors(t *testing.T) {
	p := newPersonForm()
	address := forms.NewGroup(forms.Named("street", forms.NewControl("")))
	p.group.AddControl("address", address)

	if err := messages.New().SetFor(messages.ForName("firstName")); !errors.Is(err, messages.ErrNoContainer) {
		t.Fatalf("expected ErrNoContainer, got %v", err)
	}

	component := messages.New(messages.WithContainer(p.group))
	if err := component.SetFor(messages.ForName("nickname")); !errors.Is(err, messages.ErrControlMissing) {
		t.Fatalf("expected ErrControlMissing, got %v", err)
	}
	err := component.SetFor(messages.ForName("address"))
	if !errors.Is(err, messages.ErrNotFormControl) || !errors.Is(err, messages.ErrConfiguration) {
		t.Fatalf("expected ErrNotFormControl, got %v", err)
	}

	nested := messages.New(messages.WithContainer(address))
	err = nested.SetFor(messages.ForName("zip"))
	if err == nil || !strings.Contains(err.Error(), `within "address"`) {
		t.Fatalf("expected error naming the container path, got %v", err)
	}
}

func TestIsValidWithDefaultConfiguration(t *testing.T) {
	p := newPersonForm()

	component := messages.MustNew(messages.ForControl(p.firstName))
	p.firstName.SetValue("firstName")
	p.firstName.MarkAsTouched()
	if !component.IsValid() {
		t.Fatalf("expected valid component")
	}

	other := messages.MustNew(messages.ForControls(p.lastName))
	if !other.IsValid() {
		t.Fatalf("untouched controls are not displayed")
	}
	p.lastName.MarkAsTouched()
	if other.IsValid() {
		t.Fatalf("expected invalid component once touched")
	}
}

func TestErrorMessagesReturnFirstMessagePerDisplayedControl(t *testing.T) {
	p := newPersonForm()
	component := messages.MustNew(messages.ForControls(p.firstName, p.middleName, p.lastName))

	p.firstName.MarkAsTouched()
	p.lastName.MarkAsTouched()
	p.lastName.SetValue("abc")

	want := []string{"A first name is required", "Last name needs to be at least 5 characters long"}
	if diff := cmp.Diff(want, component.ErrorMessages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayAfterSubmit(t *testing.T) {
	p := newPersonForm()
	form := messages.NewForm(p.group)
	component := messages.New(messages.WithForm(form))
	if err := component.SetFor(messages.ForName("firstName")); err != nil {
		t.Fatalf("set for: %v", err)
	}
	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	if submitted := component.Submitted(); submitted == nil || *submitted {
		t.Fatalf("expected known, false submission state")
	}
	if len(component.ErrorMessages()) != 0 {
		t.Fatalf("expected nothing displayed before submit")
	}

	if form.Submit() {
		t.Fatalf("expected invalid form")
	}
	if diff := cmp.Diff([]string{"A first name is required"}, component.ErrorMessages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	form.Reset()
	if len(component.ErrorMessages()) != 0 {
		t.Fatalf("expected reset form to hide messages")
	}
}

func TestDisplayWhenReceivesUnknownSubmission(t *testing.T) {
	p := newPersonForm()
	var calls int
	var sawNil bool
	config := messages.Config{DisplayWhen: func(control *forms.FormControl, submitted *bool) bool {
		calls++
		sawNil = submitted == nil
		return true
	}}

	component := messages.MustNew(messages.ForControl(p.firstName), messages.WithConfig(config))
	if calls != 0 {
		t.Fatalf("display rule must not run before a query")
	}
	if diff := cmp.Diff([]string{"A first name is required"}, component.ErrorMessages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if calls == 0 || !sawNil {
		t.Fatalf("expected display rule to run with an unknown submission state")
	}
}

func TestChildWithoutForAmongSeveralControls(t *testing.T) {
	first := forms.NewControl(nil)
	last := forms.NewControl(nil)

	component := messages.MustNew(messages.ForControls(first, last),
		messages.WithMessage(messages.NewMessage("required")))

	err := component.Init()
	if !errors.Is(err, messages.ErrConfiguration) || !strings.Contains(err.Error(), `key "required"`) {
		t.Fatalf("expected configuration error naming the key, got %v", err)
	}
}

func TestChildForUndeclaredControl(t *testing.T) {
	first := forms.NewControl(nil)
	last := forms.NewControl(nil)

	component := messages.MustNew(messages.ForControl(first),
		messages.WithMessage(messages.NewMessage("required", messages.For(last))))

	if err := component.Init(); !errors.Is(err, messages.ErrConsistency) {
		t.Fatalf("expected consistency error, got %v", err)
	}
}

func TestInitCanBeRetriedAfterConsistencyError(t *testing.T) {
	first := forms.NewControl(nil, forms.Required)
	last := forms.NewControl(nil)
	child := messages.NewMessage("required", messages.WithTemplate("Required!"))
	stray := messages.NewMessage("required", messages.For(last))

	component := messages.MustNew(messages.ForControl(first), messages.WithMessage(child, stray))
	if err := component.Init(); !errors.Is(err, messages.ErrConsistency) {
		t.Fatalf("expected consistency error, got %v", err)
	}
	if child.Visible() {
		t.Fatalf("expected reactions to stay held back after a failed Init")
	}

	component.RemoveMessage(stray)
	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !child.Visible() {
		t.Fatalf("expected held back reactions to run once Init succeeds")
	}

	first.SetValue("x")
	if child.Visible() {
		t.Fatalf("expected custom message to be reset once valid")
	}
	first.SetValue("")
	if !child.Visible() {
		t.Fatalf("expected status changes to be handled directly after Init")
	}
}

func TestSetForAfterInitKeepsDeclarationOnConsistencyError(t *testing.T) {
	first := forms.NewControl("x", forms.Required)
	second := forms.NewControl("y")
	child := messages.NewMessage("required", messages.For(first), messages.WithTemplate("Required!"))

	component := messages.MustNew(messages.ForControl(first), messages.WithMessage(child))
	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := component.SetFor(messages.ForControl(second)); !errors.Is(err, messages.ErrConsistency) {
		t.Fatalf("expected consistency error, got %v", err)
	}
	if controls := component.Controls(); len(controls) != 1 || controls[0] != first {
		t.Fatalf("expected the previous declaration to stay in effect, got %v", controls)
	}
	if first.StatusChanges().Len() != 1 || second.StatusChanges().Len() != 0 {
		t.Fatalf("expected subscriptions to stay on the declared control")
	}

	first.SetValue("")
	if !child.Visible() {
		t.Fatalf("expected the declared control to keep driving its message")
	}
}

func TestChildAddedAfterInitIsValidated(t *testing.T) {
	first := forms.NewControl(nil)
	last := forms.NewControl(nil)

	component := messages.MustNew(messages.ForControl(first))
	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	err := component.AddMessage(messages.NewMessage("required", messages.For(last)))
	if !errors.Is(err, messages.ErrConsistency) {
		t.Fatalf("expected consistency error, got %v", err)
	}
}

func TestUnresolvableDisplay(t *testing.T) {
	first := forms.NewControl(nil, validation.Required())

	component := messages.MustNew(messages.ForControl(first))
	err := component.Init()
	if !errors.Is(err, messages.ErrUnresolvableDisplay) {
		t.Fatalf("expected unresolvable display error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"required" error of ""`) {
		t.Fatalf("expected key and path in error, got %v", err)
	}
}

func TestUnresolvableDisplayAfterInitIsRecorded(t *testing.T) {
	control := forms.NewControl("ok", validation.Required())
	group := forms.NewGroup(forms.Named("nickname", control))

	component := messages.MustNew(messages.ForName("nickname"), messages.WithContainer(group))
	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	control.SetValue("")
	err := component.Err()
	if !errors.Is(err, messages.ErrUnresolvableDisplay) || !strings.Contains(err.Error(), `"nickname"`) {
		t.Fatalf("expected recorded error for nickname, got %v", err)
	}
	if component.Err() != nil {
		t.Fatalf("expected Err to clear recorded errors")
	}
}

func TestStatusChangesAreDeferredUntilInit(t *testing.T) {
	control := forms.NewControl(nil, forms.Required)
	child := messages.NewMessage("required", messages.WithTemplate("Required!"))

	component := messages.MustNew(messages.ForControl(control), messages.WithMessage(child))
	control.SetValue("x")
	control.SetValue("")
	if child.Visible() {
		t.Fatalf("expected no reaction before Init")
	}

	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !child.Visible() || child.Shown().Key != "required" {
		t.Fatalf("expected custom message to be shown after Init")
	}

	control.SetValue("x")
	if child.Visible() {
		t.Fatalf("expected custom message to be reset once valid")
	}
}

func TestCustomMessageRendering(t *testing.T) {
	p := newPersonForm()
	nickname := forms.NewControl("ab", forms.MinLength(4))
	p.group.AddControl("nickname", nickname)

	child := messages.NewMessage("minlength", messages.ForNamed("nickname"),
		messages.WithTemplate("{{ path }} needs {{ requiredLength }} characters, got {{ actualLength }}"))
	component := messages.MustNew(messages.ForList(messages.ForName("nickname"), messages.ForName("firstName")),
		messages.WithContainer(p.group),
		messages.WithConfig(messages.Config{DisplayWhen: messages.DisplayAlways}),
		messages.WithMessage(child))
	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	if child.For() != nickname {
		t.Fatalf("expected named child to bind to nickname")
	}
	if diff := cmp.Diff(forms.Payload{"requiredLength": 4, "actualLength": 2}, child.Context()); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}

	got, err := component.Messages()
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	want := []messages.Message{
		{Control: nickname, Path: "nickname", Key: "minlength", Text: "nickname needs 4 characters, got 2", Source: messages.SourceCustom},
		{Control: p.firstName, Path: "firstName", Key: "required", Text: "A first name is required", Source: messages.SourceValidator},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b *forms.FormControl) bool { return a == b })); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

type stubCatalog map[string]string

func (c stubCatalog) Template(_ string, key string) (string, bool) {
	msg, ok := c[key]
	return msg, ok
}

func TestCatalogFallback(t *testing.T) {
	control := forms.NewControl("abc", forms.MinLength(5))
	group := forms.NewGroup(forms.Named("code", control))

	component := messages.MustNew(messages.ForName("code"),
		messages.WithContainer(group),
		messages.WithConfig(messages.Config{
			DisplayWhen: messages.DisplayAlways,
			Catalog:     stubCatalog{"minlength": "Use at least {{ requiredLength }} characters"},
		}))
	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	got, err := component.Messages()
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Use at least 5 characters" || got[0].Source != messages.SourceCatalog {
		t.Fatalf("unexpected messages %+v", got)
	}

	control.SetValue("")
	control.SetValidators(forms.Required)
	control.UpdateValueAndValidity()
	if err := component.Err(); !errors.Is(err, messages.ErrUnresolvableDisplay) {
		t.Fatalf("expected unresolvable required error, got %v", err)
	}
	if _, err := component.Messages(); !errors.Is(err, messages.ErrUnresolvableDisplay) {
		t.Fatalf("expected Messages to fail too, got %v", err)
	}
}

func TestDestroyStopsReacting(t *testing.T) {
	control := forms.NewControl("x", forms.Required)
	child := messages.NewMessage("required")
	form := messages.NewForm(forms.NewGroup(forms.Named("x", control)))

	component := messages.MustNew(messages.ForControl(control), messages.WithMessage(child), messages.WithForm(form))
	if err := component.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	component.Destroy()

	if control.StatusChanges().Len() != 0 || form.Submissions().Len() != 0 {
		t.Fatalf("expected all subscriptions to be cancelled")
	}
	control.SetValue("")
	if child.Visible() {
		t.Fatalf("expected no reaction after Destroy")
	}
}

func TestSetForReplacesSubscriptions(t *testing.T) {
	first := forms.NewControl("x")
	second := forms.NewControl("y")

	component := messages.MustNew(messages.ForControl(first))
	if err := component.SetFor(messages.ForControl(second)); err != nil {
		t.Fatalf("set for: %v", err)
	}
	if first.StatusChanges().Len() != 0 || second.StatusChanges().Len() != 1 {
		t.Fatalf("expected subscriptions to move to the new control")
	}
}
