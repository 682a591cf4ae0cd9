// Package definition loads declarative form definitions from YAML or JSON
// documents. A document lists fields in render order, each with optional
// listener groups made of named validator rules, plus optional initial values:
//
//	fields:
//	  - name: email
//	    attributes: {label: Email}
//	    listener:
//	      onChange: [{rule: email}]
//	      onSubmit: [{rule: required, message: Email is required}]
//	values:
//	  email: ""
//
// Rules resolve through the validators registry.
package definition
