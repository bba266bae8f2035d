package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSuggestions is returned when the user gives up after a failed
	// generation.
	ErrNoSuggestions = errors.New("tui: no suggestions generated")
	// ErrNoDriver is returned by Fill when the renderer has no prompt driver.
	ErrNoDriver = errors.New("tui: prompt driver is nil")
)
