package llm

import "errors"

var (
	// ErrEmptyResponse indicates the completion endpoint returned no content.
	ErrEmptyResponse = errors.New("llm: empty completion content")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("llm: invalid output format")
)
