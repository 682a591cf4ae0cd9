package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	var source sourceFlags

	cmd := &cobra.Command{
		Use:           "fields",
		Short:         "List the field table in order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := source.load(cmd.Context(), rootOpts.Logger())
			if err != nil {
				return err
			}
			summaries := summarize(f.Fields())
			if err := writeFieldSummaries(cmd.OutOrStdout(), rootOpts.Output, summaries); err != nil {
				return WrapExitError(ExitCommandError, "write output", err)
			}
			return nil
		},
	}

	source.bind(cmd)

	return cmd
}

func summarize(fields []form.Field) []FieldSummary {
	out := make([]FieldSummary, 0, len(fields))
	for i, field := range fields {
		out = append(out, FieldSummary{
			Position:   i + 1,
			Name:       field.Name,
			Groups:     listenerGroups(field.Listener),
			Attributes: field.Attributes,
		})
	}
	return out
}

// listenerGroups reports the groups present on a listener with their rule
// counts. An empty group is still listed.
func listenerGroups(l *form.Listener) []string {
	if l == nil {
		return nil
	}
	var groups []string
	if l.OnChange != nil {
		groups = append(groups, fmt.Sprintf("onChange:%d", len(l.OnChange)))
	}
	if l.OnBlur != nil {
		groups = append(groups, fmt.Sprintf("onBlur:%d", len(l.OnBlur)))
	}
	if l.OnSubmit != nil {
		groups = append(groups, fmt.Sprintf("onSubmit:%d", len(l.OnSubmit)))
	}
	return groups
}
