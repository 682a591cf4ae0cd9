package form

// CollectFunctions flattens a listener into the submit pipeline: onChange, then
// onBlur, then onSubmit validators. Absent groups are omitted.
func CollectFunctions(listener *Listener) []Validator {
	if listener == nil {
		return nil
	}
	fns := make([]Validator, 0, len(listener.OnChange)+len(listener.OnBlur)+len(listener.OnSubmit))
	fns = append(fns, listener.OnChange...)
	fns = append(fns, listener.OnBlur...)
	fns = append(fns, listener.OnSubmit...)
	return fns
}

// Run invokes fns in order and returns the first non-nil result. Nil entries
// are skipped. Once an error is latched the remaining validators are not
// invoked.
func Run(fns []Validator, value any, snap Snapshot) any {
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		if err := fn(value, snap); err != nil {
			return err
		}
	}
	return nil
}
