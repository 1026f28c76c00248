package model

import "errors"

// Conversion failure categories. Callers classify failures with errors.Is;
// every error returned by the engine wraps exactly one of these.
var (
	// ErrMalformedInput covers syntactically invalid documents and fields
	// whose type is incompatible with the shape the engine must read.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingRequiredField is returned when a CD1 field that a mandatory
	// CD2 destination depends on is absent. Missing gameplay-affecting data
	// is never default-filled.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrUnsupportedMultilineName is returned when a name-typed field
	// contains embedded line breaks. Descriptions may span lines; names
	// may not, and the engine does not attempt to repair them.
	ErrUnsupportedMultilineName = errors.New("unsupported multiline name")

	// ErrUnknownField is returned in strict mode for input fields the
	// mapping table does not recognize. In lenient mode they are dropped
	// with a warning instead.
	ErrUnknownField = errors.New("unknown field")
)
