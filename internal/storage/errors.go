package storage

import "fmt"

// StorageError carries a code alongside the message so the handler layer
// can map storage failures to HTTP statuses without importing this package's
// internals.
type StorageError struct {
	Code    string
	Message string
}

const (
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

func (e *StorageError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

// ErrS3BucketRequired is returned when the S3 bucket name is missing.
var ErrS3BucketRequired = &StorageError{Code: codeInvalid, Message: "S3 bucket name is required"}

// ErrFileNotFound creates an error for when a file is not found.
func ErrFileNotFound(key string) error {
	return &StorageError{
		Code:    codeNotFound,
		Message: fmt.Sprintf("file not found: %s", key),
	}
}

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return &StorageError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unknown storage provider: %s", provider),
	}
}
