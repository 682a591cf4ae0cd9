package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validators"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	selectIdx    []int
	infoMessages []string
	prompted     []string
	inputPos     int
	passPos      int
	confirmPos   int
	selectPos    int
	inputErr     error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	s.prompted = append(s.prompted, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompted = append(s.prompted, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompted = append(s.prompted, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompted = append(s.prompted, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func signupForm(t *testing.T) *form.Form {
	t.Helper()
	f, err := form.New([]form.Field{
		{
			Name:       "email",
			Attributes: map[string]any{"label": "Email"},
			Listener: &form.Listener{
				OnBlur:   []form.Validator{validators.Email()},
				OnSubmit: []form.Validator{validators.Required()},
			},
		},
		{
			Name:       "password",
			Attributes: map[string]any{"format": "password"},
			Listener:   &form.Listener{OnChange: []form.Validator{validators.MinLength(4)}},
		},
		{Name: "plan", Attributes: map[string]any{"enum": []any{"free", "pro"}}},
		{Name: "age", Attributes: map[string]any{"type": "integer"}},
		{Name: "newsletter", Attributes: map[string]any{"type": "boolean"}},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestRun_SinglePass(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"a@example.com", "42"},
		passwords: []string{"secret"},
		selectIdx: []int{1},
		confirm:   []bool{true},
	}
	values, err := New(WithPromptDriver(driver)).Run(context.Background(), signupForm(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := map[string]any{
		"email":      "a@example.com",
		"password":   "secret",
		"plan":       "pro",
		"age":        int64(42),
		"newsletter": true,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Email", "password", "plan", "age", "newsletter"}, driver.prompted); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("expected no messages, got %v", driver.infoMessages)
	}
}

func TestRun_RepromptsFailingFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"bad", "", "ok@example.com"},
		passwords: []string{"abc", "abcd"},
		selectIdx: []int{0},
		confirm:   []bool{false},
	}
	f := signupForm(t)
	f.RemoveFields("age")

	values, err := New(WithPromptDriver(driver)).Run(context.Background(), f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if values["email"] != "ok@example.com" || values["password"] != "abcd" {
		t.Fatalf("unexpected values %v", values)
	}

	wantPrompts := []string{"Email", "password", "plan", "newsletter", "Email", "password", "Email"}
	if diff := cmp.Diff(wantPrompts, driver.prompted); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{
		"✗ Email: Invalid email address",
		"✗ password: Must be at least 4 characters",
		"2 field(s) need attention",
		"✗ Email: Invalid email address",
		"✗ password: Must be at least 4 characters",
		"1 field(s) need attention",
		"✗ Email: Required",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_GivesUpAfterMaxRounds(t *testing.T) {
	f, err := form.New([]form.Field{
		{Name: "name", Listener: &form.Listener{OnSubmit: []form.Validator{validators.Required()}}},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	driver := &stubDriver{inputs: []string{"", ""}}

	_, err = New(WithPromptDriver(driver), WithMaxRounds(2)).Run(context.Background(), f)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if driver.inputPos != 2 {
		t.Fatalf("expected 2 prompts, got %d", driver.inputPos)
	}
	want := []string{"1 field(s) need attention", "✗ name: Required", "1 field(s) need attention", "✗ name: Required"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if got := f.Error("name"); got != "Required" {
		t.Fatalf("expected submit error, got %v", got)
	}
}

func TestRun_PropagatesDriverErrors(t *testing.T) {
	f, err := form.New([]form.Field{{Name: "name"}})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	driver := &stubDriver{inputErr: ErrAborted}
	if _, err := New(WithPromptDriver(driver)).Run(context.Background(), f); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := New(WithPromptDriver(driver)).Run(context.Background(), nil); !errors.Is(err, ErrNilForm) {
		t.Fatalf("expected ErrNilForm, got %v", err)
	}
}

func TestRun_FollowsFieldsAddedByListeners(t *testing.T) {
	var f *form.Form
	addCompany := func(value any, _ form.Snapshot) any {
		if value == true {
			f.AddFields([]form.Field{{Name: "company"}}, 1)
		}
		return nil
	}
	var err error
	f, err = form.New([]form.Field{
		{Name: "business", Attributes: map[string]any{"type": "boolean"}, Listener: &form.Listener{OnChange: []form.Validator{addCompany}}},
		{Name: "name"},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	driver := &stubDriver{confirm: []bool{true}, inputs: []string{"Acme", "Jo"}}

	values, err := New(WithPromptDriver(driver)).Run(context.Background(), f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"business", "company", "name"}, driver.prompted); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if values["company"] != "Acme" {
		t.Fatalf("expected company value, got %v", values)
	}
}
