package explain

import "errors"

var (
	// ErrPromptUnavailable is returned when a prompt template cannot be read.
	ErrPromptUnavailable = errors.New("prompt template unavailable")
	// ErrExplainerNotFound is returned when the explainer command is not on PATH.
	ErrExplainerNotFound = errors.New("explainer command not found")
	// ErrExplainerFailed is returned when the explainer exits non-zero.
	ErrExplainerFailed = errors.New("explainer command failed")
)
