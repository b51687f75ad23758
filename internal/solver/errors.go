package solver

import "errors"

var (
	// ErrContradiction means no corpus word is consistent with the outcomes
	// observed so far.
	ErrContradiction = errors.New("contradiction: no candidates remain")

	// ErrNoGuesses means the ranker was given an empty allowed-guess set.
	ErrNoGuesses = errors.New("no allowed guesses")

	// ErrSessionFinished is returned when applying an outcome to a session
	// that is already solved or failed.
	ErrSessionFinished = errors.New("session finished")
)
