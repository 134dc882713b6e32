package interaction

import "errors"

var (
	// ErrNotDragging is returned when a drag is moved or ended before it
	// was started.
	ErrNotDragging = errors.New("interaction: no drag in progress")

	// ErrDragActive is returned when starting a drag that is already running.
	ErrDragActive = errors.New("interaction: drag already in progress")

	// ErrNoPointer is returned when an action needs the pointer position
	// while the pointer is outside the viewport.
	ErrNoPointer = errors.New("interaction: pointer is not over the viewport")
)
