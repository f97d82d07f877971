package routes

import "errors"

// Resolution errors.
var (
	// ErrNotFound is returned when a path matches no declared route.
	ErrNotFound = errors.New("route not found")

	// ErrInvalidPath is returned for paths that cannot be canonicalized.
	ErrInvalidPath = errors.New("invalid path")
)

// Table construction errors.
var (
	ErrDuplicateIndex = errors.New("more than one index route")
	ErrDuplicatePath  = errors.New("duplicate route path")
	ErrInvalidIndex   = errors.New("index route cannot have a path or children")
	ErrInvalidSegment = errors.New("invalid path segment")
	ErrMissingView    = errors.New("route has no view")
	ErrIndexAtRoot    = errors.New("root route cannot be an index route")
)
