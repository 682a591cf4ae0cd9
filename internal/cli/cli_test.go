package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstate/pkg/tui"
)

var contactDefinition = filepath.Join("testdata", "contact.yaml")

type scriptedDriver struct {
	answers map[string]string
	infos   []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	answer, ok := d.answers[cfg.Message]
	if !ok {
		return "", tui.ErrAborted
	}
	return answer, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 0, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateValidValues(t *testing.T) {
	out, err := execute(t, "validate", "--definition", contactDefinition, "--values", filepath.Join("testdata", "valid.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "✓ form is valid")
	assert.Contains(t, out, "name = Ada")
}

func TestValidateInvalidValuesJSON(t *testing.T) {
	out, err := execute(t, "--output", "json", "validate", "--definition", contactDefinition, "--values", filepath.Join("testdata", "invalid.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result SubmitResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, 3, result.ErrorCount)
	assert.Equal(t, map[string]any{
		"name":  "Required",
		"email": "Invalid email address",
		"age":   "Must be at least 18",
	}, result.Errors)
}

func TestValidateNumericURLReportsFieldError(t *testing.T) {
	out, err := execute(t, "--output", "json", "validate",
		"--definition", filepath.Join("testdata", "links.yaml"),
		"--values", filepath.Join("testdata", "numeric_url.json"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result SubmitResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, map[string]any{"site": "Invalid URL"}, result.Errors)
}

func TestValidateWithoutValuesPretty(t *testing.T) {
	out, err := execute(t, "validate", "--definition", contactDefinition)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ 2 field(s) need attention")
	assert.Contains(t, out, "  email: Required")
	assert.Contains(t, out, "  name: Required")
	assert.NotContains(t, out, "age:")
}

func TestValidateMissingDefinition(t *testing.T) {
	_, err := execute(t, "validate", "--definition", filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateRequiresSource(t *testing.T) {
	_, err := execute(t, "validate")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--definition or --openapi")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := execute(t, "--output", "xml", "fields", "--definition", contactDefinition)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "fields", "--definition", contactDefinition)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFieldsPretty(t *testing.T) {
	out, err := execute(t, "fields", "--definition", contactDefinition)
	require.NoError(t, err)

	want := "1. name [onSubmit:1]\n" +
		"2. email [onBlur:1 onSubmit:1]\n" +
		"3. age [onBlur:1]\n" +
		"4. bio\n"
	assert.Equal(t, want, out)
}

func TestFieldsJSON(t *testing.T) {
	out, err := execute(t, "--output", "json", "fields", "--definition", contactDefinition)
	require.NoError(t, err)

	var fields []FieldSummary
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	require.Len(t, fields, 4)
	assert.Equal(t, "email", fields[1].Name)
	assert.Equal(t, []string{"onBlur:1", "onSubmit:1"}, fields[1].Groups)
	assert.Equal(t, "Email", fields[1].Attributes["label"])
}

func TestFieldsFromOpenAPI(t *testing.T) {
	spec := filepath.Join("..", "..", "pkg", "openapi", "testdata", "articles.json")
	out, err := execute(t, "--output", "json", "fields", "--openapi", spec, "--operation", "createArticle")
	require.NoError(t, err)

	var fields []FieldSummary
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	assert.Equal(t, []string{"author_email", "notes", "rating", "slug", "status", "title"}, names)
}

func TestRunCollectsValues(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{
		"Name":  "Ada",
		"Email": "ada@example.com",
		"Age":   "30",
		"Bio":   "",
	}}
	out := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Output: OutputPretty, driver: driver})
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--definition", contactDefinition})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "✓ form is valid")
	assert.Contains(t, out.String(), "age = 30")
	assert.Empty(t, driver.infos)
}

func TestRunGivesUpAfterMaxRounds(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{
		"Name":  "",
		"Email": "ada@example.com",
		"Age":   "30",
		"Bio":   "",
	}}
	out := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Output: OutputJSON, driver: driver})
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--definition", contactDefinition, "--max-rounds", "1"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result SubmitResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, "Required", result.Errors["name"])
}

func TestRunAborted(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{}}
	cmd := NewRunCommand(&RootOptions{Output: OutputPretty, driver: driver})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--definition", contactDefinition})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, tui.ErrAborted)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(buf, "info", LogFormatJSON)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("field", "email").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"field":"email"`)

	_, err = NewLogger(buf, "info", "xml")
	assert.Error(t, err)
}
