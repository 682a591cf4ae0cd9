// Package openapi derives form fields from the request body of an OpenAPI 3
// operation. Each top-level property becomes a field whose listener carries the
// schema constraints: required properties validate on submit, length and enum
// constraints on change, and pattern, numeric bounds, and well-known formats on
// blur. kin-openapi does the parsing and reference resolution.
package openapi
