package domain

import "errors"

var (
	// ErrQuestionNotFound indicates a question ID or ordinal is not in the catalog.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionMismatch indicates the submitted question is not the one
	// currently awaiting an answer.
	ErrQuestionMismatch = errors.New("question does not match current progress")
	// ErrInvalidOption indicates an out-of-range option index. It never
	// consumes an attempt.
	ErrInvalidOption = errors.New("option index out of range")
	// ErrNotServed indicates no serve stamp exists for the question being
	// answered (stale or replayed request).
	ErrNotServed = errors.New("question was not served")
	// ErrAlreadyAnswered indicates a duplicate submission for a question whose
	// attempt has already been applied.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrVersionConflict is returned by a state store when a compare-and-swap
	// save loses a race. Callers re-read and re-validate.
	ErrVersionConflict = errors.New("state version conflict")
	// ErrCatalogInvalid indicates the question catalog violates its shape
	// invariants.
	ErrCatalogInvalid = errors.New("invalid question catalog")
)
