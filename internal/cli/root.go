package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/tui"
)

// Output formats accepted by --output.
const (
	OutputPretty = "pretty"
	OutputJSON   = "json"
)

// ValidOutputs defines the allowed output formats.
var ValidOutputs = []string{OutputPretty, OutputJSON}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel  string
	LogFormat string
	Output    string

	logger *zerolog.Logger
	driver tui.PromptDriver
}

// Logger returns the logger configured by the root command, or a disabled one
// when the command runs outside the root.
func (o *RootOptions) Logger() zerolog.Logger {
	if o == nil || o.logger == nil {
		return zerolog.Nop()
	}
	return *o.logger
}

// NewRootCommand creates the root command for the formstate CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "formstate",
		Short: "Drive declarative forms from the terminal",
		Long: `formstate loads field definitions (YAML/JSON or an OpenAPI operation),
validates values against their listeners, and collects input interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidOutput(opts.Output) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid output %q: must be one of %v", opts.Output, ValidOutputs))
			}
			logger, err := NewLogger(cmd.ErrOrStderr(), opts.LogLevel, opts.LogFormat)
			if err != nil {
				return WrapExitError(ExitCommandError, "configure logging", err)
			}
			opts.logger = &logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", LogFormatConsole, "log format (console|json)")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", OutputPretty, "output format (pretty|json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewFieldsCommand(opts))

	return cmd
}

func isValidOutput(format string) bool {
	for _, f := range ValidOutputs {
		if f == format {
			return true
		}
	}
	return false
}
