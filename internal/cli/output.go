package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	json "github.com/goccy/go-json"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The form is invalid
	ExitCommandError = 2 // Bad flags, unreadable definitions, aborted prompts
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// ExitError map to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// SubmitResult is the outcome of a submit, as printed by run and validate.
type SubmitResult struct {
	Valid      bool           `json:"valid"`
	ErrorCount int            `json:"errorCount"`
	Values     map[string]any `json:"values"`
	Errors     map[string]any `json:"errors,omitempty"`
}

// FieldSummary describes one table entry for the fields command.
type FieldSummary struct {
	Position   int            `json:"position"`
	Name       string         `json:"name"`
	Groups     []string       `json:"groups,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeSubmitResult(w io.Writer, format string, result SubmitResult) error {
	if format == OutputJSON {
		return writeJSON(w, result)
	}

	if result.Valid {
		fmt.Fprintln(w, "✓ form is valid")
	} else {
		fmt.Fprintf(w, "✗ %d field(s) need attention\n", result.ErrorCount)
		for _, key := range sortedKeys(result.Errors) {
			if msg := result.Errors[key]; msg != nil {
				fmt.Fprintf(w, "  %s: %v\n", key, msg)
			}
		}
	}
	if len(result.Values) > 0 {
		fmt.Fprintln(w, "values:")
		for _, key := range sortedKeys(result.Values) {
			fmt.Fprintf(w, "  %s = %v\n", key, result.Values[key])
		}
	}
	return nil
}

func writeFieldSummaries(w io.Writer, format string, fields []FieldSummary) error {
	if format == OutputJSON {
		return writeJSON(w, fields)
	}
	for _, field := range fields {
		fmt.Fprintf(w, "%d. %s", field.Position, field.Name)
		if len(field.Groups) > 0 {
			fmt.Fprintf(w, " %v", field.Groups)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
