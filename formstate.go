package formstate

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/openapi"
)

// Field aliases form.Field so callers building forms by hand can stay on the
// root package.
type Field = form.Field

// Listener aliases form.Listener.
type Listener = form.Listener

// Validator aliases form.Validator.
type Validator = form.Validator

// Snapshot aliases form.Snapshot.
type Snapshot = form.Snapshot

// Event aliases form.Event.
type Event = form.Event

// New builds a form engine from an ordered field list.
func New(fields []Field, options ...form.Option) (*form.Form, error) {
	return form.New(fields, options...)
}

// FromDefinitionFile loads a YAML or JSON field definition and builds a form
// seeded with the definition's initial values. Options are applied after the
// definition's own, so callers can override them.
func FromDefinitionFile(path string, options ...form.Option) (*form.Form, error) {
	def, err := definition.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return def.NewForm(options...)
}

// FromOpenAPI derives fields from the request body of the named operation and
// builds a form around them.
func FromOpenAPI(ctx context.Context, source openapi.Source, operationID string, options ...form.Option) (*form.Form, error) {
	fields, err := openapi.Fields(ctx, source, operationID)
	if err != nil {
		return nil, err
	}
	return form.New(fields, options...)
}
