package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageFailure matches every error caused by the backing key-value
	// store being unreadable or unwritable.
	ErrStorageFailure = errors.New("storage failure")

	// ErrWatchUnsupported is returned by Watch when the backend cannot report
	// changes.
	ErrWatchUnsupported = errors.New("store: backend does not support watching")
)

// StorageError records the operation and key of a failed backend call.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("store: %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports StorageError as an ErrStorageFailure.
func (e *StorageError) Is(target error) bool { return target == ErrStorageFailure }

func storageErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Key: key, Err: err}
}
