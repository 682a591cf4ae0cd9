package testsupport

import (
	"github.com/goliatone/go-formstate/pkg/form"
)

// Call is one recorded validator invocation.
type Call struct {
	Tag          string
	Value        any
	HasSubmitted bool
}

// Recorder hands out validators that log every invocation in order. Results
// maps tags to the value the validator returns; unknown tags return nil.
type Recorder struct {
	Results map[string]any
	Calls   []Call
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Results: map[string]any{}}
}

// Validator returns a validator that records itself under tag.
func (r *Recorder) Validator(tag string) form.Validator {
	return func(value any, snap form.Snapshot) any {
		r.Calls = append(r.Calls, Call{Tag: tag, Value: value, HasSubmitted: snap.HasSubmitted})
		return r.Results[tag]
	}
}

// Tags lists the recorded tags in call order.
func (r *Recorder) Tags() []string {
	tags := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		tags = append(tags, call.Tag)
	}
	return tags
}

// Reset forgets recorded calls but keeps Results.
func (r *Recorder) Reset() {
	r.Calls = nil
}
