package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/validation"
)

func withoutMessage(errs forms.Errors) forms.Errors {
	var out forms.Errors
	for _, failure := range errs {
		payload := failure.Payload.Clone()
		delete(payload, forms.MessageKey)
		out = out.Set(failure.Key, payload)
	}
	return out
}

func TestValidatorsMatchBuiltinsApartFromMessage(t *testing.T) {
	combinations := []struct {
		name    string
		library forms.ValidatorFn
		native  forms.ValidatorFn
		values  []any
	}{
		{"null", validation.Null, forms.NullValidator, []any{1}},
		{"min", validation.Min(0, "message"), forms.Min(0), []any{-1, 1}},
		{"max", validation.Max(0, "message"), forms.Max(0), []any{1, -1}},
		{"minlength", validation.MinLength(2, "message"), forms.MinLength(2), []any{"a", "ab"}},
		{"maxlength", validation.MaxLength(2, "message"), forms.MaxLength(2), []any{"abc", "ab"}},
		{"pattern", validation.Pattern("a", "message"), forms.Pattern("a"), []any{"b", "a"}},
		{"required", validation.Required("message"), forms.Required, []any{nil, 123}},
		{"requiredTrue", validation.RequiredTrue("message"), forms.RequiredTrue, []any{false, true}},
		{"email", validation.Email("message"), forms.Email, []any{"someone@users@noreply.example.com", "someone@users.noreply.example.com"}},
	}

	for _, combination := range combinations {
		t.Run(combination.name, func(t *testing.T) {
			for _, value := range combination.values {
				control := forms.NewControl(value)
				got := combination.library(control)
				want := combination.native(control)
				if diff := cmp.Diff(want, withoutMessage(got)); diff != "" {
					t.Fatalf("value %v: result mismatch (-want +got):\n%s", value, diff)
				}
				for _, failure := range got {
					if failure.Payload.Message() != "message" {
						t.Fatalf("value %v: expected message on %q", value, failure.Key)
					}
				}
			}
		})
	}
}

func TestNativeValidatorsCarryNoMessage(t *testing.T) {
	invalid := []struct {
		validator forms.ValidatorFn
		value     any
	}{
		{forms.Min(0), -1},
		{forms.Max(0), 1},
		{forms.MinLength(2), "a"},
		{forms.MaxLength(2), "abc"},
		{forms.Pattern("a"), "b"},
		{forms.Required, nil},
		{forms.RequiredTrue, false},
		{forms.Email, "someone@users@noreply.example.com"},
	}
	for _, tt := range invalid {
		errs := tt.validator(forms.NewControl(tt.value))
		if errs.Empty() {
			t.Fatalf("expected %v to be invalid", tt.value)
		}
		if first, _ := errs.First(); first.Payload.HasMessage() {
			t.Fatalf("built-in validators must not set a message")
		}
	}
}

func TestValidatorsWithoutMessage(t *testing.T) {
	control := forms.NewControl("", validation.Required())
	err := validation.FirstError(control)
	if err == nil || err.HasMessage() {
		t.Fatalf("expected a failure without message, got %+v", err)
	}
}

func TestComposedValidatorsReportFirstMessage(t *testing.T) {
	control := forms.NewControl("", validation.Compose(
		validation.Required("A first name is required"),
		validation.MinLengthFunc(validation.Value(5), func(n int) string {
			return "First name needs to be at least 5 characters long"
		}),
	))

	if got := validation.FirstError(control).Message(); got != "A first name is required" {
		t.Fatalf("unexpected message %q", got)
	}

	control.SetValue("abc")
	if got := validation.FirstError(control).Message(); got != "First name needs to be at least 5 characters long" {
		t.Fatalf("unexpected message %q", got)
	}
}
