package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/validation"
)

// MessageFunc turns a selected error into the text shown when an answer is
// rejected.
type MessageFunc func(err *validation.ValidationError) string

// FillOption customises Fill.
type FillOption func(*fillConfig)

type fillConfig struct {
	message MessageFunc
	secrets map[string]struct{}
	skip    func(path string, control *forms.FormControl) bool
}

// WithMessages resolves rejection text, for example through a message
// catalogue. The default uses the error's own message, then its key.
func WithMessages(fn MessageFunc) FillOption {
	return func(cfg *fillConfig) {
		if fn != nil {
			cfg.message = fn
		}
	}
}

// WithSecrets asks for the controls at the given paths without echoing input.
func WithSecrets(paths ...string) FillOption {
	return func(cfg *fillConfig) {
		for _, path := range paths {
			cfg.secrets[strings.TrimSpace(path)] = struct{}{}
		}
	}
}

// WithSkip leaves controls for which fn reports true untouched.
func WithSkip(fn func(path string, control *forms.FormControl) bool) FillOption {
	return func(cfg *fillConfig) {
		cfg.skip = fn
	}
}

// DefaultMessage is the MessageFunc used when none is configured.
func DefaultMessage(err *validation.ValidationError) string {
	if err == nil {
		return ""
	}
	if err.HasMessage() {
		return err.Message()
	}
	return fmt.Sprintf("%s validation failed", err.Key)
}

// Fill prompts for every leaf control under root in path order. Each answer
// is stored on the control and checked with the control's own validators;
// the first error is reported back to the driver, which asks again. Booleans
// use a confirmation prompt. Answered controls are marked touched.
func Fill(ctx context.Context, driver Driver, root forms.Control, opts ...FillOption) error {
	if driver == nil {
		return ErrNoDriver
	}
	if root == nil {
		return errors.New("prompt: root control is required")
	}
	cfg := fillConfig{message: DefaultMessage, secrets: map[string]struct{}{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	type leaf struct {
		path    string
		control *forms.FormControl
	}
	var leaves []leaf
	forms.Walk(root, func(path string, control forms.Control) bool {
		if fc, ok := control.(*forms.FormControl); ok && fc.Enabled() {
			leaves = append(leaves, leaf{path: path, control: fc})
		}
		return true
	})

	for _, item := range leaves {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.skip != nil && cfg.skip(item.path, item.control) {
			continue
		}
		if err := ask(ctx, driver, cfg, item.path, item.control); err != nil {
			return fmt.Errorf("prompt: %s: %w", item.path, err)
		}
		item.control.MarkAsTouched()
	}
	return nil
}

func ask(ctx context.Context, driver Driver, cfg fillConfig, path string, control *forms.FormControl) error {
	current := control.Value()
	label := labelFor(path)

	if initial, ok := current.(bool); ok {
		answer, err := driver.Confirm(ctx, ConfirmConfig{Message: label, Default: initial})
		if err != nil {
			return err
		}
		control.SetValue(answer)
		return nil
	}

	validate := func(answer string) error {
		control.SetValue(convert(answer, current))
		if selected := validation.FirstError(control); selected != nil {
			return errors.New(cfg.message(selected))
		}
		return nil
	}
	input := InputConfig{
		Message:   label,
		Default:   defaultText(current),
		Help:      path,
		Validator: validate,
	}

	var (
		answer string
		err    error
	)
	if _, secret := cfg.secrets[path]; secret {
		input.Default = ""
		answer, err = driver.Password(ctx, input)
	} else {
		answer, err = driver.Input(ctx, input)
	}
	if err != nil {
		return err
	}
	// Drivers may skip the validator; store the final answer regardless.
	control.SetValue(convert(answer, current))
	return nil
}

// convert keeps numeric controls numeric. An empty answer clears the value so
// required checks see no input.
func convert(answer string, current any) any {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return nil
	}
	switch current.(type) {
	case int, int64, float64:
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return n
		}
	}
	return answer
}

func defaultText(value any) string {
	if forms.IsEmptyValue(value) {
		return ""
	}
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

func labelFor(path string) string {
	if path == "" {
		return "value"
	}
	return path
}
