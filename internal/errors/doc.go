// Package errors provides coded, structured errors for the dropdown host,
// catalog loader and configuration layer.
//
// Each code maps to a registered template with a category, a short message
// and a longer detail. Callers add context fluently:
//
//	err := errors.New("E201").
//	    WithDetail("s3://menus/regions.json returned 403").
//	    WithSuggestion("check the bucket policy").
//	    Wrap(cause)
//
// DropdownError implements Unwrap, so errors.Is and errors.As from the
// standard library see through it to the wrapped cause.
//
// # Codes
//
//	E101-E119  protocol: client frames and event dispatch
//	E201-E219  catalog: option sources
//	E301-E319  config: dropdown.json and flags
package errors
