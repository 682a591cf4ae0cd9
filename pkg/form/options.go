package form

import "github.com/rs/zerolog"

// Option configures a Form.
type Option func(*Form)

// WithInitialValues seeds the value store. The map is copied.
func WithInitialValues(values map[string]any) Option {
	return func(f *Form) {
		if len(values) > 0 {
			f.initialValues = cloneMap(values)
		}
	}
}

// WithLogger routes engine diagnostics to logger. The default discards them.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

// WithUnsetValue sets the value handed to validators at submit time for fields
// that have no stored value. Defaults to nil; forms backed by text inputs often
// pass "" so unset and empty are treated alike.
func WithUnsetValue(value any) Option {
	return func(f *Form) {
		f.unsetValue = value
	}
}
