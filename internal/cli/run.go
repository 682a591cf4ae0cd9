package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/tui"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		source    sourceFlags
		maxRounds int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect values interactively",
		Long: `Prompt for every field, validating answers as they are entered. Fields
that fail on submit are asked again, up to --max-rounds times.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rootOpts.Logger()
			f, err := source.load(cmd.Context(), logger)
			if err != nil {
				return err
			}

			options := []tui.Option{tui.WithLogger(logger), tui.WithMaxRounds(maxRounds)}
			if rootOpts.driver != nil {
				options = append(options, tui.WithPromptDriver(rootOpts.driver))
			}
			session := tui.New(options...)

			_, runErr := session.Run(cmd.Context(), f)
			if runErr != nil && !errors.Is(runErr, tui.ErrInvalid) {
				return WrapExitError(ExitCommandError, "run", runErr)
			}

			errs := f.Errors()
			result := SubmitResult{
				Valid:      runErr == nil,
				ErrorCount: countErrors(errs),
				Values:     f.Values(),
				Errors:     errs,
			}
			if err := writeSubmitResult(cmd.OutOrStdout(), rootOpts.Output, result); err != nil {
				return WrapExitError(ExitCommandError, "write output", err)
			}
			if !result.Valid {
				return WrapExitError(ExitFailure, "run", runErr)
			}
			return nil
		},
	}

	source.bind(cmd)
	cmd.Flags().IntVar(&maxRounds, "max-rounds", tui.DefaultMaxRounds, "submit attempts before giving up")

	return cmd
}

func countErrors(errs map[string]any) int {
	count := 0
	for _, msg := range errs {
		if msg != nil {
			count++
		}
	}
	return count
}
