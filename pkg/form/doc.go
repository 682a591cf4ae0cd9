// Package form implements the form state engine: an ordered field table with a
// derived name index, value and error stores, and listener pipelines dispatched
// on change, blur, and submit events. A Form is owned by a single event loop and
// is not safe for concurrent use; validators may call back into the Form and
// those calls complete before the outer call resumes.
package form
