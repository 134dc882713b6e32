package rig

import "errors"

// Sentinel errors for the rig package.
var (
	// ErrForeignKeyPoint is returned when an operation receives a key point
	// that does not belong to the key point set it works against.
	ErrForeignKeyPoint = errors.New("rig: key point does not belong to the bound key point set")

	// ErrNilKeyPoint is returned when a nil key point is passed.
	ErrNilKeyPoint = errors.New("rig: nil key point")

	// ErrDuplicateID is returned when a different key point with an already
	// registered id is added to a set.
	ErrDuplicateID = errors.New("rig: duplicate id")

	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("rig: non-finite coordinate")

	// ErrEmptyKeyPointSet is returned by nearest-point queries on an empty set.
	ErrEmptyKeyPointSet = errors.New("rig: key point set is empty")

	// ErrNoDefinedValue is returned when a magic point has no explicit value
	// at any key point.
	ErrNoDefinedValue = errors.New("rig: magic point has no defined value")

	// ErrDanglingValue is returned when a magic point holds a value for a key
	// point that has since been removed from its set.
	ErrDanglingValue = errors.New("rig: magic point value references a removed key point")

	// ErrSetMismatch is returned when combining magic points bound to
	// different key point sets.
	ErrSetMismatch = errors.New("rig: magic points are bound to different key point sets")

	// ErrKeyPointInUse is returned when removing a key point that still
	// carries explicit magic point values.
	ErrKeyPointInUse = errors.New("rig: key point is referenced by magic point values")

	// ErrShapeClosed is returned when adding points to a closed shape.
	ErrShapeClosed = errors.New("rig: shape is closed")
)
