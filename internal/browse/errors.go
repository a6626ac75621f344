package browse

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("browse: aborted")
	// ErrNotFound is returned when the starting path is not in the dataset.
	ErrNotFound = errors.New("browse: path not found")
)
