package form

import "sort"

// Table is the ordered field set plus a name index derived from it. The index
// is rebuilt after every mutation and never edited directly.
type Table struct {
	fields []Field
	index  map[string]int
}

// NewTable builds a table from fields, keeping their order.
func NewTable(fields []Field) *Table {
	t := &Table{}
	t.replace(cloneFields(fields))
	return t
}

// Len reports the number of fields.
func (t *Table) Len() int {
	return len(t.fields)
}

// Fields returns a copy of the ordered field sequence.
func (t *Table) Fields() []Field {
	return cloneFields(t.fields)
}

// Lookup returns the field registered under name.
func (t *Table) Lookup(name string) (Field, bool) {
	idx, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[idx].clone(), true
}

// Has reports whether a field named name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Record returns the name-keyed view of the table.
func (t *Table) Record() map[string]Field {
	return ToRecord(t.fields)
}

// Insert splices fields at index, clamping index into [0, Len()]. Fields with
// an empty name or a name already present are skipped and returned.
func (t *Table) Insert(index int, fields ...Field) (skipped []Field) {
	if index < 0 {
		index = 0
	}
	if index > len(t.fields) {
		index = len(t.fields)
	}

	seen := make(map[string]struct{}, len(fields))
	accepted := make([]Field, 0, len(fields))
	for _, field := range fields {
		if field.Name == "" || t.Has(field.Name) {
			skipped = append(skipped, field)
			continue
		}
		if _, dup := seen[field.Name]; dup {
			skipped = append(skipped, field)
			continue
		}
		seen[field.Name] = struct{}{}
		accepted = append(accepted, field.clone())
	}
	if len(accepted) == 0 {
		return skipped
	}

	next := make([]Field, 0, len(t.fields)+len(accepted))
	next = append(next, t.fields[:index]...)
	next = append(next, accepted...)
	next = append(next, t.fields[index:]...)
	t.replace(next)
	return skipped
}

// Remove drops every field whose name is listed. It returns how many fields
// were removed; unknown names are ignored.
func (t *Table) Remove(names ...string) int {
	if len(names) == 0 || len(t.fields) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}
	next := make([]Field, 0, len(t.fields))
	for _, field := range t.fields {
		if _, ok := drop[field.Name]; ok {
			continue
		}
		next = append(next, field)
	}
	removed := len(t.fields) - len(next)
	if removed > 0 {
		t.replace(next)
	}
	return removed
}

// Move takes the field at from and reinserts it at to. Out of range indices
// leave the table untouched and report false.
func (t *Table) Move(from, to int) bool {
	n := len(t.fields)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	next := make([]Field, 0, n)
	next = append(next, t.fields[:from]...)
	next = append(next, t.fields[from+1:]...)
	moved := t.fields[from]
	next = append(next[:to], append([]Field{moved}, next[to:]...)...)
	t.replace(next)
	return true
}

// Patch merges patch into the named field. A non-nil listener replaces the
// current one and attributes are shallow merged. The name is never changed.
// Use SetListener to remove a listener.
func (t *Table) Patch(name string, patch Field) bool {
	idx, ok := t.index[name]
	if !ok {
		return false
	}
	next := cloneFields(t.fields)
	field := next[idx]
	if patch.Listener != nil {
		field.Listener = patch.Listener
	}
	if len(patch.Attributes) > 0 {
		if field.Attributes == nil {
			field.Attributes = make(map[string]any, len(patch.Attributes))
		}
		for k, v := range patch.Attributes {
			field.Attributes[k] = v
		}
	}
	next[idx] = field
	t.replace(next)
	return true
}

// Reset swaps the whole sequence for fields.
func (t *Table) Reset(fields []Field) {
	t.replace(cloneFields(fields))
}

func (t *Table) replace(fields []Field) {
	if fields == nil {
		fields = []Field{}
	}
	index := make(map[string]int, len(fields))
	for i, field := range fields {
		index[field.Name] = i
	}
	t.fields = fields
	t.index = index
}

// ToRecord keys fields by name. Later duplicates win.
func ToRecord(fields []Field) map[string]Field {
	out := make(map[string]Field, len(fields))
	for _, field := range fields {
		out[field.Name] = field
	}
	return out
}

// ToArray flattens a record into a slice ordered by name. Each element's Name
// is taken from its key.
func ToArray(record map[string]Field) []Field {
	names := make([]string, 0, len(record))
	for name := range record {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Field, 0, len(names))
	for _, name := range names {
		field := record[name]
		field.Name = name
		out = append(out, field)
	}
	return out
}

// SetListener replaces the named field's listener. A nil listener removes it,
// so the field is skipped by every event.
func (t *Table) SetListener(name string, l *Listener) bool {
	idx, ok := t.index[name]
	if !ok {
		return false
	}
	next := cloneFields(t.fields)
	next[idx].Listener = l
	t.replace(next)
	return true
}
