// Package contact implements the contact-form lead pipeline: intake
// validation, persistence through a pluggable submission store, and the
// admin-facing query/mutation operations.
package contact

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Submission is one persisted contact-form lead.
type Submission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
	Read        bool      `json:"read"`
}

// Store persists the submission collection as a single document.
// Implementations must treat a missing document as an empty collection.
type Store interface {
	ReadSubmissions(ctx context.Context) ([]Submission, error)
	WriteSubmissions(ctx context.Context, submissions []Submission) error
}

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces submission identifiers.
type IDGenerator interface {
	NewID(now time.Time) string
}

// ValidationError reports a rejected intake payload. It is client-facing
// and never indicates a system fault.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ErrNotFound is returned when a mutation references an unknown submission id.
var ErrNotFound = errors.New("submission not found")

// ErrStorageUnavailable wraps a failure of every configured backend.
var ErrStorageUnavailable = errors.New("submission storage unavailable")

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
