package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
)

// MustForm builds a form or fails the test.
func MustForm(t *testing.T, fields []form.Field, options ...form.Option) *form.Form {
	t.Helper()

	f, err := form.New(fields, options...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

// MustLoadDefinition reads a definition fixture or fails the test.
func MustLoadDefinition(t *testing.T, path string) definition.Definition {
	t.Helper()

	def, err := definition.LoadFile(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// MustDefinitionForm loads a definition fixture and builds its form.
func MustDefinitionForm(t *testing.T, path string, options ...form.Option) *form.Form {
	t.Helper()

	f, err := MustLoadDefinition(t, path).NewForm(options...)
	if err != nil {
		t.Fatalf("definition form: %v", err)
	}
	return f
}

// State is the serialisable part of a form: everything except validators.
type State struct {
	Fields       []string       `json:"fields"`
	Values       map[string]any `json:"values"`
	Errors       map[string]any `json:"errors"`
	HasSubmitted bool           `json:"hasSubmitted"`
}

// StateOf captures the current state of f.
func StateOf(f *form.Form) State {
	fields := f.Fields()
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	return State{
		Fields:       names,
		Values:       f.Values(),
		Errors:       f.Errors(),
		HasSubmitted: f.HasSubmitted(),
	}
}

// WriteGolden writes value to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareState diffs the state of f against the golden file at path. Both
// sides go through JSON so numbers compare by value.
func CompareState(t *testing.T, path string, f *form.Form) string {
	t.Helper()

	got := normalize(t, StateOf(f))
	WriteGolden(t, path, got)

	var want State
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	return cmp.Diff(want, got)
}

func normalize(t *testing.T, state State) State {
	t.Helper()

	payload, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	var out State
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
