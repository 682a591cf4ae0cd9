// Package cli wires the formstate engine into a cobra command tree.
//
// Commands:
//
//	formstate run --definition signup.yaml
//	formstate run --openapi api.json --operation createArticle
//	formstate validate --definition signup.yaml --values values.json
//	formstate fields --definition signup.yaml
//
// Results go to stdout in the format picked by --output (pretty or json).
// Logs go to stderr.
package cli
