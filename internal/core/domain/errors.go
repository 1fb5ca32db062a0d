package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Tagging Errors.

	// ErrDuplicateKeyword indicates the keyword value is already attached to the document.
	ErrDuplicateKeyword = errors.New("keyword already added")

	// ErrNoSelection indicates a bulk operation was requested with no rows selected.
	ErrNoSelection = errors.New("no rows selected")

	// ErrPersistence indicates the backend rejected or failed a keyword update.
	// The local document keeps the change until the next refresh.
	ErrPersistence = errors.New("keyword update not persisted")

	// ErrTaggingSubmission indicates the backend did not accept a tagging request.
	ErrTaggingSubmission = errors.New("tagging submission failed")

	// ErrTaggingInProgress indicates a tagging submission is already outstanding.
	ErrTaggingInProgress = errors.New("tagging in progress")

	// ErrStaleResponse indicates a response was dropped because a newer refresh started.
	ErrStaleResponse = errors.New("stale response discarded")

	// Backend Errors.

	// ErrBackendUnavailable indicates the backend could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// DuplicateKeywordError reports a rejected keyword for a single document.
type DuplicateKeywordError struct {
	Value         string
	DocumentTitle string
}

func (e *DuplicateKeywordError) Error() string {
	return fmt.Sprintf("Keyword %s already added to %s", e.Value, e.DocumentTitle)
}

// Unwrap lets errors.Is match ErrDuplicateKeyword.
func (e *DuplicateKeywordError) Unwrap() error {
	return ErrDuplicateKeyword
}

// PersistenceError reports a failed keyword update for a document.
type PersistenceError struct {
	DocumentID string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting keywords of %s: %v", e.DocumentID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// TaggingSubmissionError reports a non-success reply to a tagging request.
type TaggingSubmissionError struct {
	Status  int
	Message string
}

func (e *TaggingSubmissionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tagging submission failed with status %d", e.Status)
	}
	return fmt.Sprintf("tagging submission failed with status %d: %s", e.Status, e.Message)
}

// Unwrap lets errors.Is match ErrTaggingSubmission.
func (e *TaggingSubmissionError) Unwrap() error {
	return ErrTaggingSubmission
}
