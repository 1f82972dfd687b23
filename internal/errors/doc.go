// Package errors provides structured, actionable error messages for dialkit.
//
// Every error carries a code (e.g. "D120") that maps to a category, a short
// message and a longer explanation. Errors can be decorated with the source
// location of a panel file, a suggestion and a wrapped cause:
//
//	err := errors.New("D141").
//	    WithLocation("panels/hero.toml", 12, 3).
//	    WithSuggestion("Check the TOML syntax around this line")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR D141: Panel file could not be parsed
//	//
//	//   panels/hero.toml:12:3
//	//
//	//     11 │ [shadow]
//	//   → 12 │ blur = [24, 0,
//	//        │   ^
//	//
//	//   Hint: Check the TOML syntax around this line
//
// # Categories
//
//   - store: panel and preset lookups
//   - config: dialkit.json loading and validation
//   - loader: panel definition files
//   - transport: HTTP and WebSocket requests
//   - export: snapshot sinks
//   - cli: command line usage
package errors
