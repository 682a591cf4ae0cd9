// Package validators provides ready-made form.Validator constructors for the
// common constraints (required, length and numeric bounds, patterns, enums, tag
// based checks) plus a name-keyed registry used by declarative definitions.
// Rule identifiers follow the OpenAPI-derived names: min/max,
// minLength/maxLength, pattern. Length and bound checks ignore empty values so
// they compose with Required.
package validators
