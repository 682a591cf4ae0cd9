package form

// Store holds the value and error mappings. Error entries written by a
// validator run are kept even when the result is nil, so a key may be present
// with no error; readers should treat that like a missing key.
type Store struct {
	values map[string]any
	errors map[string]any
}

// NewStore seeds a store with a copy of values.
func NewStore(values map[string]any) *Store {
	return &Store{
		values: cloneMap(values),
		errors: make(map[string]any),
	}
}

// Values returns a copy of the value mapping.
func (s *Store) Values() map[string]any {
	return cloneMap(s.values)
}

// Errors returns a copy of the error mapping.
func (s *Store) Errors() map[string]any {
	return cloneMap(s.errors)
}

// Value returns the value stored under key.
func (s *Store) Value(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Error returns the error recorded under key, nil when there is none.
func (s *Store) Error(key string) any {
	return s.errors[key]
}

// HasError reports whether a non-nil error is recorded under key.
func (s *Store) HasError(key string) bool {
	return s.errors[key] != nil
}

// SetValues shallow merges partial into the values.
func (s *Store) SetValues(partial map[string]any) {
	for k, v := range partial {
		s.values[k] = v
	}
}

// SetErrors shallow merges partial into the errors.
func (s *Store) SetErrors(partial map[string]any) {
	for k, v := range partial {
		s.errors[k] = v
	}
}

// SetValue writes a single value.
func (s *Store) SetValue(key string, value any) {
	s.values[key] = value
}

// SetError writes a single error entry; nil records "validated, no error".
func (s *Store) SetError(key string, err any) {
	s.errors[key] = err
}

// DeleteValue removes key from the values.
func (s *Store) DeleteValue(key string) {
	delete(s.values, key)
}

// DeleteError removes key from the errors.
func (s *Store) DeleteError(key string) {
	delete(s.errors, key)
}

// ReplaceErrors swaps the error mapping wholesale.
func (s *Store) ReplaceErrors(errs map[string]any) {
	s.errors = cloneMap(errs)
}

// ResetValues empties the values.
func (s *Store) ResetValues() {
	s.values = make(map[string]any)
}

// ResetErrors empties the errors.
func (s *Store) ResetErrors() {
	s.errors = make(map[string]any)
}

// ErrorCount reports how many entries hold a non-nil error.
func (s *Store) ErrorCount() int {
	count := 0
	for _, err := range s.errors {
		if err != nil {
			count++
		}
	}
	return count
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
