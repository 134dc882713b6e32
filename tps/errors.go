package tps

import "errors"

// Sentinel errors for the tps package.
var (
	// ErrNoAnchors is returned when building a system without anchors.
	ErrNoAnchors = errors.New("tps: at least one anchor is required")

	// ErrSingular is returned when the augmented system cannot be solved,
	// typically because two anchors share the same position.
	ErrSingular = errors.New("tps: singular system")

	// ErrLengthMismatch is returned when the number of values does not match
	// the number of anchors.
	ErrLengthMismatch = errors.New("tps: anchors and values must have same length")

	// ErrNonFinite is returned when an anchor coordinate or a target value is
	// NaN or infinite.
	ErrNonFinite = errors.New("tps: non-finite input")
)
