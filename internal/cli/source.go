package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/openapi"
)

// sourceFlags selects where a command reads its fields from.
type sourceFlags struct {
	Definition string
	OpenAPI    string
	Operation  string
}

func (s *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.Definition, "definition", "d", "", "field definition file (YAML or JSON)")
	cmd.Flags().StringVar(&s.OpenAPI, "openapi", "", "OpenAPI document path or URL")
	cmd.Flags().StringVar(&s.Operation, "operation", "", "operation ID whose request body defines the fields")
	cmd.MarkFlagsMutuallyExclusive("definition", "openapi")
	cmd.MarkFlagsRequiredTogether("openapi", "operation")
}

func (s *sourceFlags) load(ctx context.Context, logger zerolog.Logger) (*form.Form, error) {
	options := []form.Option{form.WithLogger(logger)}

	switch {
	case strings.TrimSpace(s.Definition) != "":
		def, err := definition.LoadFile(s.Definition)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load definition", err)
		}
		logger.Debug().Str("source", def.Source).Int("fields", len(def.Fields)).Msg("definition loaded")
		f, err := def.NewForm(options...)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "build form", err)
		}
		return f, nil

	case strings.TrimSpace(s.OpenAPI) != "":
		src, err := openapi.ParseSource(s.OpenAPI)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "parse openapi source", err)
		}
		fields, err := openapi.Fields(ctx, src, s.Operation)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load openapi fields", err)
		}
		logger.Debug().Str("source", src.Location()).Str("operation", s.Operation).Int("fields", len(fields)).Msg("openapi fields loaded")
		f, err := form.New(fields, options...)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "build form", err)
		}
		return f, nil
	}

	return nil, NewExitError(ExitCommandError, "one of --definition or --openapi is required")
}
