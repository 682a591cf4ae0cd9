package form

// AddFields splices fields into the table at index. Index is clamped to the
// valid range, so 0 prepends and any value past the end appends. Fields with an
// empty or already registered name are skipped.
func (f *Form) AddFields(fields []Field, index int) {
	f.dispatch(func() {
		skipped := f.table.Insert(index, fields...)
		for _, field := range skipped {
			f.logger.Warn().
				Str("field", field.Name).
				Msg("form: skipped field with empty or duplicate name")
		}
	})
}

// RemoveFields drops the named fields. Their values and errors are left in
// place; unknown names are ignored.
func (f *Form) RemoveFields(names ...string) {
	f.dispatch(func() {
		removed := f.table.Remove(names...)
		f.logger.Debug().Strs("fields", names).Int("removed", removed).Msg("form: fields removed")
	})
}

// MoveField relocates the field at index from to index to. Invalid indices are
// a no-op.
func (f *Form) MoveField(from, to int) {
	f.dispatch(func() {
		if !f.table.Move(from, to) {
			f.logger.Debug().Int("from", from).Int("to", to).Msg("form: move ignored")
		}
	})
}

// ChangeField merges patch into the named field. A non-nil Listener replaces
// the existing one, Attributes are merged key by key, and Name is ignored.
// A nil Listener keeps the current one; see SetListener.
func (f *Form) ChangeField(name string, patch Field) {
	f.dispatch(func() {
		f.table.Patch(name, patch)
	})
}

// SetListener replaces the named field's listener. Passing nil removes it.
// Unknown names are ignored.
func (f *Form) SetListener(name string, l *Listener) {
	f.dispatch(func() {
		f.table.SetListener(name, l)
	})
}

// ResetFields restores the field configuration captured by New, discarding
// every later mutation.
func (f *Form) ResetFields() {
	f.dispatch(func() {
		f.table.Reset(f.initialFields)
	})
}
