// Package errors provides structured, actionable error messages for the
// markup command line tool and render service.
//
// A MarkupError carries a stable code, a category, an optional source
// location with surrounding lines, and a hint on how to fix the problem.
//
// # Error Categories
//
// Errors are organized into categories:
//   - outline: problems in an outline document (syntax, structure, names)
//   - config: problems loading or validating markup.json
//   - io: reading input or writing output failed
//   - server: the render service could not start or stopped unexpectedly
//
// # Usage
//
//	err := errors.New("M002").
//	    WithLocation("page.yaml", 7, 5).
//	    WithSuggestion("Give the element a tag, or drop its children")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR M002: Invalid outline structure
//	//
//	//   page.yaml:7:5
//	//
//	//        5 │   - tag: p
//	//        6 │     text: hello
//	//   →    7 │   - children: [x]
//	//          │     ^
//	//
//	//   Hint: Give the element a tag, or drop its children
package errors
