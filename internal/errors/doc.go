// Package errors provides structured, actionable error messages for lu.
//
// Every error carries a code (e.g. "L001") that maps to a registered
// template with a category, a short message, a longer detail and a
// documentation link. Errors are built fluently:
//
//	err := errors.New("L002").
//	    WithState("selected").
//	    WithDetail(`representation "aria" declares 3 values, state has 2`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR L002: Representation not aligned with state values
//	//
//	//   state "selected"
//	//
//	//   representation "aria" declares 3 values, state has 2
//	//
//	//   Learn more: https://lu.dev/docs/errors/L002
//
// # Error Categories
//
//   - config: widget and state declarations rejected at construction
//   - runtime: operations on a live widget (unknown state, unknown value)
//   - dom: markup parsing and selector compilation
//   - binding: selector-to-widget registration and resolution
//   - cli: command line and project file problems
package errors
