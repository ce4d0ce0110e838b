package quiz

import "errors"

var (
	// ErrNotFound indicates no content exists for a topic.
	ErrNotFound = errors.New("topic not found")

	// ErrInvalidBundle indicates topic content failed structural validation.
	ErrInvalidBundle = errors.New("invalid topic bundle")

	// ErrInvalidSet indicates an attempt was started on a set with no questions.
	ErrInvalidSet = errors.New("invalid question set")

	// ErrInvalidOption indicates an option index outside the question's options.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnknownQuestion indicates a question that is not in the attempt's set.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrSetLocked indicates a set whose predecessor has not been completed.
	ErrSetLocked = errors.New("set is locked")
)
