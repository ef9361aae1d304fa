package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/prompt"
	"github.com/goliatone/go-formvalidate/pkg/validation"
)

// scriptedDriver replays answers per prompt message. Text answers are fed to
// the validator one by one, the way survey asks again after a rejection.
type scriptedDriver struct {
	answers   map[string][]string
	confirms  map[string]bool
	rejected  []string
	asked     []string
	passwords []string
	err       error
}

func (s *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	return s.answer(cfg)
}

func (s *scriptedDriver) Password(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	s.passwords = append(s.passwords, cfg.Message)
	return s.answer(cfg)
}

func (s *scriptedDriver) answer(cfg prompt.InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	answers := s.answers[cfg.Message]
	for _, answer := range answers {
		if cfg.Validator == nil {
			return answer, nil
		}
		if err := cfg.Validator(answer); err != nil {
			s.rejected = append(s.rejected, err.Error())
			continue
		}
		return answer, nil
	}
	return "", errors.New("script exhausted for " + cfg.Message)
}

func (s *scriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	return s.confirms[cfg.Message], nil
}

func (s *scriptedDriver) Info(context.Context, string) error {
	return nil
}

func signupForm() *forms.FormGroup {
	return forms.NewGroup(
		forms.Named("name", forms.NewControl(nil, validation.Required("Name is required"), validation.MinLength(3))),
		forms.Named("age", forms.NewControl(float64(0), validation.Min(18, "Too young"))),
		forms.Named("address", forms.NewGroup(
			forms.Named("city", forms.NewControl("Lisbon")),
		)),
		forms.Named("password", forms.NewControl(nil, validation.Required("Password is required"))),
		forms.Named("terms", forms.NewControl(false, validation.RequiredTrue("Accept the terms"))),
	)
}

func TestFillValidatesAnswers(t *testing.T) {
	form := signupForm()
	driver := &scriptedDriver{
		answers: map[string][]string{
			"name":         {"", "Al", "Alice"},
			"age":          {"12", "30"},
			"address.city": {"Porto"},
			"password":     {"secret"},
		},
		confirms: map[string]bool{"terms": true},
	}

	if err := prompt.Fill(context.Background(), driver, form, prompt.WithSecrets("password")); err != nil {
		t.Fatalf("fill: %v", err)
	}

	wantAsked := []string{"name", "age", "address.city", "password", "terms"}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	wantRejected := []string{"Name is required", "minlength validation failed", "Too young"}
	if diff := cmp.Diff(wantRejected, driver.rejected); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"password"}, driver.passwords); diff != "" {
		t.Fatalf("password prompts mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"name":     "Alice",
		"age":      float64(30),
		"address":  map[string]any{"city": "Porto"},
		"password": "secret",
		"terms":    true,
	}
	if diff := cmp.Diff(want, form.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if !form.Valid() {
		t.Fatalf("expected form to be valid after filling")
	}
	name, _ := form.Child("name")
	if !name.Touched() {
		t.Fatalf("expected answered control to be touched")
	}
}

func TestFillCustomMessages(t *testing.T) {
	form := forms.NewGroup(forms.Named("code", forms.NewControl(nil, validation.Required())))
	driver := &scriptedDriver{answers: map[string][]string{"code": {"", "x"}}}

	err := prompt.Fill(context.Background(), driver, form, prompt.WithMessages(func(err *validation.ValidationError) string {
		return "catalog:" + err.Key
	}))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]string{"catalog:required"}, driver.rejected); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
}

func TestFillSkip(t *testing.T) {
	form := signupForm()
	driver := &scriptedDriver{
		answers:  map[string][]string{"name": {"Alice"}},
		confirms: map[string]bool{"terms": true},
	}
	skip := func(path string, _ *forms.FormControl) bool {
		return path != "name" && path != "terms"
	}
	if err := prompt.Fill(context.Background(), driver, form, prompt.WithSkip(skip)); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "terms"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	city, _ := forms.Lookup(form, "address.city")
	if city.Touched() {
		t.Fatalf("expected skipped control to stay untouched")
	}
}

func TestFillErrors(t *testing.T) {
	if err := prompt.Fill(context.Background(), nil, signupForm()); !errors.Is(err, prompt.ErrNoDriver) {
		t.Fatalf("expected ErrNoDriver, got %v", err)
	}

	driver := &scriptedDriver{err: prompt.ErrAborted}
	err := prompt.Fill(context.Background(), driver, signupForm())
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := prompt.Fill(ctx, &scriptedDriver{}, signupForm()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultMessage(t *testing.T) {
	control := forms.NewControl(nil, validation.Required("Name is required"))
	if got := prompt.DefaultMessage(validation.FirstError(control)); got != "Name is required" {
		t.Fatalf("unexpected message %q", got)
	}
	bare := forms.NewControl(nil, forms.Required)
	if got := prompt.DefaultMessage(validation.FirstError(bare)); got != "required validation failed" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := prompt.DefaultMessage(nil); got != "" {
		t.Fatalf("expected empty message for nil, got %q", got)
	}
}
