// Package catalog loads the option lists the dropdown host serves.
//
// A catalog is JSON, either a bare list of options
//
//	[{"value": "a", "label": "Apple"}, {"value": "b", "label": "Banana"}]
//
// or an object that also names the initial selection
//
//	{"current": "a", "options": [...]}
//
// Sources are local file paths or s3://bucket/key URIs.
package catalog
