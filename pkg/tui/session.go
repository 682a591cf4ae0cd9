package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Session prompts for field values and feeds them through a form.
type Session struct {
	driver    PromptDriver
	maxRounds int
	logger    zerolog.Logger
	theme     Theme
}

// New constructs a Session with defaults (survey driver, DefaultMaxRounds).
func New(options ...Option) *Session {
	s := &Session{
		maxRounds: DefaultMaxRounds,
		logger:    zerolog.Nop(),
		theme:     Theme{ErrorPrefix: "✗ ", InfoPrefix: ""},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = newSurveyDriver()
	}
	return s
}

// Run walks the form until it submits cleanly. The first round prompts every
// field; later rounds prompt only the fields that failed the last submit. The
// collected values are returned on success. ErrInvalid is returned, together
// with the values, when the last round still fails.
func (s *Session) Run(ctx context.Context, f *form.Form) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if f == nil {
		return nil, ErrNilForm
	}

	pending := func(form.Field) bool { return true }
	for round := 1; round <= s.maxRounds; round++ {
		if err := s.promptRound(ctx, f, pending); err != nil {
			return nil, err
		}

		valid, count := f.OnSubmit()
		s.logger.Debug().Int("round", round).Int("error_count", count).Msg("tui: submitted")
		if valid {
			return f.Values(), nil
		}

		if err := s.info(ctx, fmt.Sprintf("%d field(s) need attention", count)); err != nil {
			return nil, err
		}
		failing := f.Errors()
		pending = func(field form.Field) bool { return failing[field.Name] != nil }
		if err := s.reportErrors(ctx, f, pending); err != nil {
			return nil, err
		}
	}
	return f.Values(), ErrInvalid
}

// promptRound asks for every field accepted by include. The table is re-read
// after each answer because listeners may add or remove fields.
func (s *Session) promptRound(ctx context.Context, f *form.Form, include func(form.Field) bool) error {
	visited := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		field, ok := nextField(f.Fields(), visited, include)
		if !ok {
			return nil
		}
		visited[field.Name] = struct{}{}

		value, err := s.prompt(ctx, f, field)
		if err != nil {
			return err
		}
		event := form.Event{Name: field.Name, Value: value}
		f.OnChange(event)
		f.OnBlur(event)

		if msg := f.Error(field.Name); msg != nil {
			if err := s.fieldError(ctx, field, msg); err != nil {
				return err
			}
		}
	}
}

func (s *Session) reportErrors(ctx context.Context, f *form.Form, include func(form.Field) bool) error {
	for _, field := range f.Fields() {
		if !include(field) {
			continue
		}
		if err := s.fieldError(ctx, field, f.Error(field.Name)); err != nil {
			return err
		}
	}
	return nil
}

func nextField(fields []form.Field, visited map[string]struct{}, include func(form.Field) bool) (form.Field, bool) {
	for _, field := range fields {
		if _, seen := visited[field.Name]; seen {
			continue
		}
		if include(field) {
			return field, true
		}
	}
	return form.Field{}, false
}

func (s *Session) prompt(ctx context.Context, f *form.Form, field form.Field) (any, error) {
	label := displayLabel(field)
	help := attributeString(field, "description")
	current, hasCurrent := f.Value(field.Name)
	if !hasCurrent {
		current, hasCurrent = field.Attribute("default")
	}
	kind := attributeString(field, "type")

	if options := enumOptions(field); len(options) > 0 {
		defaultIdx := -1
		if hasCurrent {
			defaultIdx = indexOf(options, fmt.Sprint(current))
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return "", nil
		}
		return options[idx], nil
	}

	if kind == "boolean" {
		def, _ := current.(bool)
		return s.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: help})
	}

	cfg := InputConfig{Message: label, Help: help}
	if hasCurrent && current != nil {
		cfg.Default = fmt.Sprint(current)
	}

	var (
		answer string
		err    error
	)
	if isSecret(field) {
		answer, err = s.driver.Password(ctx, cfg)
	} else {
		answer, err = s.driver.Input(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}
	return coerce(kind, answer), nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) fieldError(ctx context.Context, field form.Field, msg any) error {
	if msg == nil {
		return nil
	}
	return s.driver.Info(ctx, fmt.Sprintf("%s%s: %v", s.theme.ErrorPrefix, displayLabel(field), msg))
}

func displayLabel(field form.Field) string {
	if label := attributeString(field, "label"); label != "" {
		return label
	}
	return field.Name
}

func attributeString(field form.Field, key string) string {
	raw, ok := field.Attribute(key)
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(raw)
}

func isSecret(field form.Field) bool {
	if attributeString(field, "format") == "password" {
		return true
	}
	raw, _ := field.Attribute("secret")
	secret, _ := raw.(bool)
	return secret
}

func enumOptions(field form.Field) []string {
	raw, ok := field.Attribute("enum")
	if !ok {
		return nil
	}
	var out []string
	switch values := raw.(type) {
	case []string:
		out = append(out, values...)
	case []any:
		for _, v := range values {
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func coerce(kind, answer string) any {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return answer
	}
	switch kind {
	case "integer":
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case "number":
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return n
		}
	}
	return answer
}
