// Package tui drives a form.Form from a terminal. Each field is prompted in
// table order and the answer is dispatched as a change followed by a blur; the
// form is then submitted and only the failing fields are asked again. Prompts go
// through the PromptDriver seam, backed by survey by default.
package tui
