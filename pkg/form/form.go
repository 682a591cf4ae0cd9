package form

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Form owns the field table, the value and error stores, and the submitted
// flag for one form instance.
type Form struct {
	table         *Table
	store         *Store
	initialFields []Field
	initialValues map[string]any
	unsetValue    any
	hasSubmitted  bool
	logger        zerolog.Logger

	depth       int
	subscribers []*Subscription
	publishing  bool
	nextSubID   int
}

// New builds a Form from an ordered field configuration. The configuration is
// captured as the baseline restored by ResetFields.
func New(fields []Field, options ...Option) (*Form, error) {
	seen := make(map[string]struct{}, len(fields))
	for i, field := range fields {
		if field.Name == "" {
			return nil, fmt.Errorf("%w (index %d)", ErrEmptyFieldName, i)
		}
		if _, ok := seen[field.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	f := &Form{
		initialFields: cloneFields(fields),
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}

	f.table = NewTable(fields)
	f.store = NewStore(f.initialValues)
	return f, nil
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]any {
	return f.store.Values()
}

// Value returns the stored value for name.
func (f *Form) Value(name string) (any, bool) {
	return f.store.Value(name)
}

// Errors returns a copy of the current errors. Entries may be present with a
// nil error once a field has been validated.
func (f *Form) Errors() map[string]any {
	return f.store.Errors()
}

// Error returns the error recorded for name, nil when there is none.
func (f *Form) Error(name string) any {
	return f.store.Error(name)
}

// Fields returns the ordered field sequence.
func (f *Form) Fields() []Field {
	return f.table.Fields()
}

// Field looks up a field by name.
func (f *Form) Field(name string) (Field, bool) {
	return f.table.Lookup(name)
}

// HasSubmitted reports whether the last terminal event was a submit attempt.
func (f *Form) HasSubmitted() bool {
	return f.hasSubmitted
}

// Valid reports whether no field currently holds an error.
func (f *Form) Valid() bool {
	return f.store.ErrorCount() == 0
}

// Snapshot copies the current state.
func (f *Form) Snapshot() Snapshot {
	return Snapshot{
		Values:       f.store.Values(),
		Errors:       f.store.Errors(),
		Fields:       f.table.Fields(),
		HasSubmitted: f.hasSubmitted,
	}
}

// OnChange records a new value for ev.Name and runs the field's onChange
// validators against it. Any error is cleared before validation and the
// submitted flag is reset.
func (f *Form) OnChange(ev Event) {
	f.dispatch(func() {
		f.hasSubmitted = false
		if f.store.HasError(ev.Name) {
			f.store.SetError(ev.Name, nil)
		}
		f.store.SetValue(ev.Name, ev.Value)

		field, ok := f.table.Lookup(ev.Name)
		if !ok || field.Listener == nil || field.Listener.OnChange == nil {
			return
		}
		result := Run(field.Listener.OnChange, ev.Value, f.Snapshot())
		f.store.SetError(ev.Name, result)

		f.logger.Debug().
			Str("event", "change").
			Str("field", ev.Name).
			Bool("invalid", result != nil).
			Msg("form: validated")
	})
}

// OnBlur runs the field's onBlur validators against ev.Value. Values and the
// submitted flag are left untouched.
func (f *Form) OnBlur(ev Event) {
	f.dispatch(func() {
		field, ok := f.table.Lookup(ev.Name)
		if !ok || field.Listener == nil || field.Listener.OnBlur == nil {
			return
		}
		result := Run(field.Listener.OnBlur, ev.Value, f.Snapshot())
		f.store.SetError(ev.Name, result)

		f.logger.Debug().
			Str("event", "blur").
			Str("field", ev.Name).
			Bool("invalid", result != nil).
			Msg("form: validated")
	})
}

// OnSubmit validates every field that has a listener against its stored value,
// running onChange, onBlur, and onSubmit validators in that order. The error
// store is replaced with one entry per validated field. It returns whether the
// form is valid and how many fields failed.
func (f *Form) OnSubmit() (valid bool, count int) {
	f.dispatch(func() {
		f.hasSubmitted = true

		fields := f.table.Fields()
		next := make(map[string]any, len(fields))
		for _, field := range fields {
			if field.Listener == nil {
				continue
			}
			value, ok := f.store.Value(field.Name)
			if !ok {
				value = f.unsetValue
			}
			result := Run(CollectFunctions(field.Listener), value, f.Snapshot())
			next[field.Name] = result
			if result != nil {
				count++
			}
		}
		f.store.ReplaceErrors(next)

		f.logger.Debug().
			Str("event", "submit").
			Int("fields", len(fields)).
			Int("error_count", count).
			Msg("form: submitted")
	})
	return count == 0, count
}

// SetValues shallow merges partial into the values.
func (f *Form) SetValues(partial map[string]any) {
	f.dispatch(func() { f.store.SetValues(partial) })
}

// SetErrors shallow merges partial into the errors.
func (f *Form) SetErrors(partial map[string]any) {
	f.dispatch(func() { f.store.SetErrors(partial) })
}

// DeleteValue removes the value stored under key.
func (f *Form) DeleteValue(key string) {
	f.dispatch(func() { f.store.DeleteValue(key) })
}

// DeleteError removes the error recorded under key.
func (f *Form) DeleteError(key string) {
	f.dispatch(func() { f.store.DeleteError(key) })
}

// ResetValues empties the values.
func (f *Form) ResetValues() {
	f.dispatch(f.store.ResetValues)
}

// ResetErrors empties the errors.
func (f *Form) ResetErrors() {
	f.dispatch(f.store.ResetErrors)
}

// ResetForm empties both values and errors in one step.
func (f *Form) ResetForm() {
	f.dispatch(func() {
		f.store.ResetErrors()
		f.store.ResetValues()
	})
}

// dispatch runs fn as one entry point. Subscribers are notified once the
// outermost call returns normally; nested calls made by validators are folded
// into it.
func (f *Form) dispatch(fn func()) {
	f.depth++
	completed := false
	defer func() {
		f.depth--
		if completed && f.depth == 0 {
			f.publish()
		}
	}()
	fn()
	completed = true
}
