// Package errors provides coded, actionable error messages for vlist.
//
// Every error carries a registered code that maps to a category, a short
// message and a longer explanation. Errors raised while reading a patch
// script or a config file also carry the location in the input and the
// surrounding lines, so the CLI can point at the offending node.
//
// # Error Categories
//
//   - render: the host tree rejected a mutation or a node was misused
//   - script: a patch script could not be parsed or built
//   - config: vlist.json is malformed or inconsistent
//   - storage: the snapshot store failed
//   - transport: the HTTP server failed
//   - cli: a command was invoked incorrectly
//
// # Usage
//
//	err := errors.New("E151").
//	    WithSource("greeting.yaml", src, 4, 7).
//	    WithSuggestion("Remove either text or element")
//
//	fmt.Print(err.Format())
//	// Output:
//	// ERROR E151: Node must set exactly one of text, element or list
//	//
//	//   greeting.yaml:4:7
//	//
//	//        2 │ steps:
//	//        3 │   - nodes:
//	//   →    4 │       - text: hi
//	//          │         ^
//
// The host and vdom packages return plain sentinel errors and never use this
// package; the CLI wraps them with FromError when printing.
package errors
