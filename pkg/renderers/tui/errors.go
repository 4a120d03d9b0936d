package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnavailable is returned when the picker has nothing to choose from
	// because options are still loading or failed to load.
	ErrUnavailable     = errors.New("tui: options unavailable")
	ErrUnsupportedView = errors.New("tui: view not supported")
)
