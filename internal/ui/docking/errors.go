package docking

import "errors"

var (
	// ErrUnknownViewport is returned for a viewport the session does not
	// know.
	ErrUnknownViewport = errors.New("unknown viewport")
	// ErrUnknownSurface is returned for a floating window that does not
	// exist.
	ErrUnknownSurface = errors.New("unknown surface")
)
