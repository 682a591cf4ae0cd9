package definition

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validators"
)

// Definition is a resolved document ready to build forms from.
type Definition struct {
	Source     string
	Fields     []form.Field
	Values     map[string]any
	UnsetValue any
}

// NewForm builds a Form seeded with the definition's fields and values. Extra
// options are applied after the definition's own.
func (d Definition) NewForm(options ...form.Option) (*form.Form, error) {
	opts := []form.Option{form.WithInitialValues(d.Values)}
	if d.UnsetValue != nil {
		opts = append(opts, form.WithUnsetValue(d.UnsetValue))
	}
	opts = append(opts, options...)
	return form.New(d.Fields, opts...)
}

// LoadFile reads and resolves the definition stored at path.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and resolves the definition stored at path within fsys.
func LoadFS(fsys fs.FS, path string) (Definition, error) {
	if fsys == nil {
		return Definition{}, fmt.Errorf("definition: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML or JSON document and resolves its rules. source is used
// in error messages only.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("definition: file %s is empty", source)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Definition{}, fmt.Errorf("definition: parse %s: %w", source, err)
	}
	return Resolve(doc, source)
}

// Resolve turns a decoded document into form fields.
func Resolve(doc Document, source string) (Definition, error) {
	def := Definition{
		Source:     source,
		Fields:     make([]form.Field, 0, len(doc.Fields)),
		Values:     doc.Values,
		UnsetValue: doc.UnsetValue,
	}

	seen := make(map[string]struct{}, len(doc.Fields))
	for idx, spec := range doc.Fields {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return Definition{}, fmt.Errorf("definition: file %s field %d has an empty name", source, idx)
		}
		if _, dup := seen[name]; dup {
			return Definition{}, fmt.Errorf("definition: file %s defines field %q twice", source, name)
		}
		seen[name] = struct{}{}

		listener, err := resolveListener(spec.Listener)
		if err != nil {
			return Definition{}, fmt.Errorf("definition: file %s field %q: %w", source, name, err)
		}
		def.Fields = append(def.Fields, form.Field{
			Name:       name,
			Listener:   listener,
			Attributes: spec.Attributes,
		})
	}
	return def, nil
}

func resolveListener(spec *ListenerSpec) (*form.Listener, error) {
	if spec == nil {
		return nil, nil
	}
	onChange, err := resolveGroup("onChange", spec.OnChange)
	if err != nil {
		return nil, err
	}
	onBlur, err := resolveGroup("onBlur", spec.OnBlur)
	if err != nil {
		return nil, err
	}
	onSubmit, err := resolveGroup("onSubmit", spec.OnSubmit)
	if err != nil {
		return nil, err
	}
	return &form.Listener{OnChange: onChange, OnBlur: onBlur, OnSubmit: onSubmit}, nil
}

func resolveGroup(group string, rules []RuleSpec) ([]form.Validator, error) {
	if rules == nil {
		return nil, nil
	}
	out := make([]form.Validator, 0, len(rules))
	for _, rule := range rules {
		v, err := validators.Lookup(rule.Rule, rule.Params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", group, err)
		}
		if rule.Message != "" {
			v = validators.Message(v, rule.Message)
		}
		if rule.AfterSubmit {
			v = validators.AfterSubmit(v)
		}
		out = append(out, v)
	}
	return out, nil
}
