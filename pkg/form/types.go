package form

// Validator inspects a field value and reports an error payload, or nil when the
// value is acceptable. The payload is opaque to the engine (typically a message
// string). The snapshot reflects engine state at the time the pipeline started.
type Validator func(value any, snap Snapshot) any

// Func adapts a value-only check into a Validator.
func Func(fn func(value any) any) Validator {
	if fn == nil {
		return nil
	}
	return func(value any, _ Snapshot) any {
		return fn(value)
	}
}

// Listener groups the validators attached to a field. A nil group is absent and
// never runs; an empty non-nil group runs and reports no error.
type Listener struct {
	OnChange []Validator
	OnBlur   []Validator
	OnSubmit []Validator
}

// Field describes one named input slot.
type Field struct {
	Name       string
	Listener   *Listener
	Attributes map[string]any
}

// Attribute returns an extra attribute attached to the field.
func (f Field) Attribute(key string) (any, bool) {
	if len(f.Attributes) == 0 {
		return nil, false
	}
	value, ok := f.Attributes[key]
	return value, ok
}

func (f Field) clone() Field {
	out := Field{Name: f.Name, Listener: f.Listener}
	if f.Attributes != nil {
		out.Attributes = make(map[string]any, len(f.Attributes))
		for k, v := range f.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.clone()
	}
	return out
}

// Event is the payload the rendering layer hands to OnChange and OnBlur.
type Event struct {
	Name  string
	Value any
}

// Snapshot is a point-in-time copy of the engine state handed to validators and
// subscribers. Mutating it does not affect the Form.
type Snapshot struct {
	Values       map[string]any
	Errors       map[string]any
	Fields       []Field
	HasSubmitted bool
}

// Value returns the stored value for name.
func (s Snapshot) Value(name string) any {
	return s.Values[name]
}

// Error returns the recorded error for name.
func (s Snapshot) Error(name string) any {
	return s.Errors[name]
}
