package types

import (
	"errors"
	"fmt"
)

// Container read errors. Load wraps them in a LoadError.
var (
	ErrContainerNotFound = errors.New("container file not found")
	ErrSectionNotFound   = errors.New("section not found")
	ErrColumnNotFound    = errors.New("column not found")
	ErrMalformedRow      = errors.New("malformed row")
)

// Input and session errors.
var (
	ErrInvalidName    = errors.New("name must not be empty")
	ErrAuthentication = errors.New("invalid username or password")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrForbidden      = errors.New("operation not permitted for role")
)

// LoadError reports that the container could not be read. It is
// recoverable: Load still returns an empty Dataset alongside it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError reports caller input that failed a precondition. Nothing
// was mutated.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageWriteError reports a failed container write. The previous
// container content and the in-memory tables are unchanged.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is or wraps a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorageWriteError reports whether err is or wraps a StorageWriteError.
func IsStorageWriteError(err error) bool {
	var we *StorageWriteError
	return errors.As(err, &we)
}
