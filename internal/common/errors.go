// Package common defines sentinel errors and small helpers shared by the
// storage, service and session layers of the Smart-Desk client. Callers
// should use errors.Is to match these values; lower layers wrap them with
// fmt.Errorf("...: %w", err) so the driver cause stays in the chain.
package common

import (
	"errors"
	"fmt"
)

var (
	// Storage-level errors (medium unavailable or corrupted).
	ErrStorageFailure = errors.New("storage failure")

	// Account errors.
	ErrNoAccount          = errors.New("no account")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors.
	ErrInvalidWorkMode = errors.New("invalid work mode")
)

// StorageError wraps err so that errors.Is(result, ErrStorageFailure) holds
// while the underlying cause remains reachable. A nil err yields nil.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}
