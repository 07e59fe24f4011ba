// Package validator interprets a declarative, pipe-delimited rule string
// mini-language against decoded JSON input.
//
// Rules are declared per field and evaluated in order:
//
//	rules := validator.Rules{
//	    "username": "required|string|min:3|max:50",
//	    "role":     "required|in:admin,user,mod",
//	}
//
// The "required" rule short-circuits the remaining rules for its field;
// every other failing rule accumulates, so a field may report several
// errors. A non-empty report is returned as *Errors; on success the input
// is returned unchanged — rules never coerce or rewrite values.
package validator
