// Package domain holds the error taxonomy shared by every aggregate.
package domain

import (
	"errors"

	"agrocredito/pkg/loancalc"
)

var (
	// ErrInvalidInput: calculator received a non-positive principal/term or a negative rate.
	ErrInvalidInput = loancalc.ErrInvalidInput
	// ErrValidation: request outside program bounds or missing a required field.
	ErrValidation = errors.New("validation error")
	// ErrInvalidTransition: transition out of a terminal state or not in the table.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrConcurrentModification: another actor changed the record first; safe to retry.
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrPersistence: the store is unavailable or failed; nothing was applied.
	ErrPersistence = errors.New("persistence failure")
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
)
