package definition_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validators"
)

func names(fields []form.Field) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.Name)
	}
	return out
}

func TestLoadFile_YAML(t *testing.T) {
	def, err := definition.LoadFile("testdata/signup.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{"email", "password", "address", "nickname", "newsletter"}
	if diff := cmp.Diff(want, names(def.Fields)); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"label": "Email", "type": "email"}, def.Fields[0].Attributes); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	nickname := def.Fields[3].Listener
	if nickname == nil || nickname.OnSubmit == nil || len(nickname.OnSubmit) != 0 {
		t.Fatalf("empty group should be present and empty, got %+v", nickname)
	}
	if def.Fields[4].Listener != nil {
		t.Fatalf("field without listener should stay without one")
	}

	f, err := def.NewForm()
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.OnChange(form.Event{Name: "email", Value: "bad"})
	f.OnChange(form.Event{Name: "password", Value: "short"})
	f.OnBlur(form.Event{Name: "password", Value: "short"})
	if got := f.Error("password"); got != "Must be at least 8 characters" {
		t.Fatalf("expected blur error, got %v", got)
	}

	valid, count := f.OnSubmit()
	if valid || count != 3 {
		t.Fatalf("expected (false, 3), got (%v, %d)", valid, count)
	}
	wantErrors := map[string]any{
		"email":    "Invalid email address",
		"password": "Must be at least 8 characters",
		"address":  "Required",
		"nickname": nil,
	}
	if diff := cmp.Diff(wantErrors, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if v, _ := f.Value("newsletter"); v != true {
		t.Fatalf("initial values not applied, got %v", v)
	}
}

func TestLoadFile_CustomMessage(t *testing.T) {
	def, err := definition.LoadFile("testdata/signup.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f, err := def.NewForm()
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.OnChange(form.Event{Name: "email", Value: ""})
	f.SetValues(map[string]any{"address": "Main St"})
	if _, count := f.OnSubmit(); count != 1 {
		t.Fatalf("expected only the email to fail, got %d: %v", count, f.Errors())
	}
	if got := f.Error("email"); got != "Email is required" {
		t.Fatalf("custom message not applied, got %v", got)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/signup.json": {Data: mustRead(t, "testdata/signup.json")},
	}
	def, err := definition.LoadFS(fsys, "forms/signup.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "age"}, names(def.Fields)); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if def.UnsetValue != "" {
		t.Fatalf("expected unset value \"\", got %#v", def.UnsetValue)
	}

	f, err := def.NewForm()
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.OnBlur(form.Event{Name: "age", Value: "12"})
	if got := f.Error("age"); got != "Must be at least 18" {
		t.Fatalf("unexpected age error %v", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "empty", doc: "  ", wantErr: "is empty"},
		{name: "bad yaml", doc: "fields: [", wantErr: "parse"},
		{name: "empty name", doc: "fields:\n  - name: ''\n", wantErr: "empty name"},
		{name: "duplicate", doc: "fields:\n  - name: a\n  - name: a\n", wantErr: "twice"},
		{name: "unknown rule", doc: "fields:\n  - name: a\n    listener:\n      onBlur: [{rule: bogus}]\n", wantErr: "unknown rule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definition.Parse([]byte(tt.doc), "inline.yaml")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	_, err := definition.Parse([]byte("fields:\n  - name: a\n    listener:\n      onBlur: [{rule: bogus}]\n"), "x")
	if !errors.Is(err, validators.ErrUnknownRule) {
		t.Fatalf("expected wrapped ErrUnknownRule, got %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := definition.LoadFile("testdata/missing.yaml"); err == nil {
		t.Fatalf("expected read error")
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
