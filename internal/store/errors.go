package store

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID is returned when a document ID is not a valid object ID.
	ErrInvalidID = errors.New("invalid document id")

	// ErrDuplicateTransaction is returned when inserting a payment whose
	// transactionId already exists. Callers must treat it as the
	// already-processed outcome, never as a crash.
	ErrDuplicateTransaction = errors.New("transaction already recorded")
)
