package document

import "errors"

// Sentinel errors for the document package.
var (
	// ErrUnknownModel is returned for a scoped id naming no registered model,
	// or a reference pointing at a model of the wrong kind.
	ErrUnknownModel = errors.New("document: unknown model")

	// ErrMissingObject is returned when a reference names an id that is not
	// present in the graph.
	ErrMissingObject = errors.New("document: referenced object is missing")

	// ErrBadID is returned for ids that are not of the form "Model#id", and
	// for entity ids containing the "#" separator.
	ErrBadID = errors.New("document: malformed id")

	// ErrBadRecord is returned when a record lacks a field or holds a value
	// of the wrong type.
	ErrBadRecord = errors.New("document: malformed record")

	// ErrUnsupportedFormat is returned by Save and Load for file extensions
	// other than .json, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("document: unsupported file format")
)
