package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validators"
)

// ErrOperationNotFound is returned when no operation matches the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Option configures document loading.
type Option func(*options)

type options struct {
	externalRefs bool
}

// WithExternalRefs allows $ref values that point outside the document.
func WithExternalRefs(allow bool) Option {
	return func(o *options) {
		o.externalRefs = allow
	}
}

// Fields loads the document at src and derives fields for operationID.
func Fields(ctx context.Context, src Source, operationID string, opts ...Option) ([]form.Field, error) {
	if src == nil {
		return nil, errors.New("openapi: source is nil")
	}
	loader := newLoader(ctx, opts)

	var (
		spec *openapi3.T
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		spec, err = loader.LoadFromFile(src.Location())
	case SourceKindURL:
		loc, parseErr := urlOf(src)
		if parseErr != nil {
			return nil, parseErr
		}
		spec, err = loader.LoadFromURI(loc)
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", src.Location(), err)
	}
	return fieldsFromSpec(ctx, spec, operationID)
}

// FieldsFromData parses an in-memory document and derives fields for
// operationID.
func FieldsFromData(ctx context.Context, data []byte, operationID string, opts ...Option) ([]form.Field, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	spec, err := newLoader(ctx, opts).LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return fieldsFromSpec(ctx, spec, operationID)
}

func newLoader(ctx context.Context, opts []Option) *openapi3.Loader {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
}

func fieldsFromSpec(ctx context.Context, spec *openapi3.T, operationID string) ([]form.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	op := findOperation(spec, operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(op.RequestBody)
	if schema == nil {
		return []form.Field{}, nil
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]form.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			fields = append(fields, form.Field{Name: name})
			continue
		}
		_, isRequired := required[name]
		field, err := buildField(name, ref.Value, isRequired)
		if err != nil {
			return nil, fmt.Errorf("openapi: operation %q property %q: %w", operationID, name, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if id == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func buildField(name string, schema *openapi3.Schema, required bool) (form.Field, error) {
	attrs := map[string]any{"label": name}
	if schema.Title != "" {
		attrs["label"] = schema.Title
	}
	if t := schemaType(schema.Type); t != "" {
		attrs["type"] = t
	}
	if schema.Format != "" {
		attrs["format"] = schema.Format
	}
	if schema.Description != "" {
		attrs["description"] = schema.Description
	}
	if schema.Default != nil {
		attrs["default"] = schema.Default
	}
	if len(schema.Enum) > 0 {
		attrs["enum"] = append([]any(nil), schema.Enum...)
	}

	var onChange, onBlur, onSubmit []form.Validator
	if schema.MinLength > 0 {
		onChange = append(onChange, validators.MinLength(int(schema.MinLength)))
	}
	if schema.MaxLength != nil {
		onChange = append(onChange, validators.MaxLength(int(*schema.MaxLength)))
	}
	if len(schema.Enum) > 0 {
		onChange = append(onChange, validators.OneOf(schema.Enum...))
	}
	if schema.Pattern != "" {
		v, err := validators.Pattern(schema.Pattern)
		if err != nil {
			return form.Field{}, err
		}
		onBlur = append(onBlur, v)
	}
	if schema.Min != nil {
		onBlur = append(onBlur, validators.Min(*schema.Min))
	}
	if schema.Max != nil {
		onBlur = append(onBlur, validators.Max(*schema.Max))
	}
	switch schema.Format {
	case "email":
		onBlur = append(onBlur, validators.Email())
	case "uri", "url":
		onBlur = append(onBlur, validators.URL())
	}
	if required {
		onSubmit = append(onSubmit, validators.Required())
	}

	field := form.Field{Name: name, Attributes: attrs}
	if onChange != nil || onBlur != nil || onSubmit != nil {
		field.Listener = &form.Listener{OnChange: onChange, OnBlur: onBlur, OnSubmit: onSubmit}
	}
	return field, nil
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func urlOf(src Source) (*url.URL, error) {
	if u, ok := src.(urlSource); ok {
		return u.raw, nil
	}
	parsed, err := url.ParseRequestURI(src.Location())
	if err != nil {
		return nil, fmt.Errorf("openapi: invalid URL %q: %w", src.Location(), err)
	}
	return parsed, nil
}
