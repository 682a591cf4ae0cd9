// Package testsupport holds helpers shared by the formstate test suites:
// recording validators, form and definition fixtures, and golden files for
// submitted state.
package testsupport
