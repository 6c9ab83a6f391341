package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic form of the entity-specific variants below.
	ErrNotFound = errors.New("entity not found")

	// ErrInsertFailed is returned when an insert fails at the storage layer.
	// A failed insert is never conflated with validation: by the time the
	// store is reached, the entity has already passed sanitization.
	ErrInsertFailed = errors.New("insert failed")

	// ErrUpdateFailed is returned when an update fails at the storage layer.
	// Zero rows affected is NOT this error; that outcome is reported as an
	// affected count of zero and promoted to ErrNotFound by the service.
	ErrUpdateFailed = errors.New("update failed")

	// ErrDeleteFailed is returned when a delete fails at the storage layer,
	// as distinct from deleting a row that does not exist.
	ErrDeleteFailed = errors.New("delete failed")

	// Entity-specific "not found" errors

	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrSettingsNotFound indicates that no settings record has been
	// persisted yet; callers fall back to domain.DefaultSettings.
	ErrSettingsNotFound = fmt.Errorf("%w: settings", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStorageFault checks if the error is a storage-level failure, as opposed
// to a not-found outcome or a validation error.
func IsStorageFault(err error) bool {
	return errors.Is(err, ErrInsertFailed) ||
		errors.Is(err, ErrUpdateFailed) ||
		errors.Is(err, ErrDeleteFailed)
}

// StoreError carries additional context for store-specific failures.
type StoreError struct {
	Entity    string // the entity type (e.g. "task", "settings")
	Operation string // the operation that failed (e.g. "insert", "update")
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
