package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/form"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		source     sourceFlags
		valuesPath string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Submit a set of values without prompting",
		Long: `Load the fields, merge the values file into the form, and submit once.

Every listener group of every field runs against its value. The command exits
with status 1 when any field reports an error.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rootOpts.Logger()
			f, err := source.load(cmd.Context(), logger)
			if err != nil {
				return err
			}
			if valuesPath != "" {
				values, err := readValues(valuesPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "read values", err)
				}
				f.SetValues(values)
			}

			result := submit(f)
			logger.Info().Bool("valid", result.Valid).Int("error_count", result.ErrorCount).Msg("validate")
			if err := writeSubmitResult(cmd.OutOrStdout(), rootOpts.Output, result); err != nil {
				return WrapExitError(ExitCommandError, "write output", err)
			}
			if !result.Valid {
				return NewExitError(ExitFailure, fmt.Sprintf("%d field(s) failed validation", result.ErrorCount))
			}
			return nil
		},
	}

	source.bind(cmd)
	cmd.Flags().StringVar(&valuesPath, "values", "", "values file (JSON or YAML object)")

	return cmd
}

func submit(f *form.Form) SubmitResult {
	valid, count := f.OnSubmit()
	return SubmitResult{
		Valid:      valid,
		ErrorCount: count,
		Values:     f.Values(),
		Errors:     f.Errors(),
	}
}

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	default:
		err = json.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return values, nil
}
