package domain

import "errors"

// Sentinel errors for the failure classes callers branch on with
// errors.Is. Adapters wrap these around the underlying cause.
var (
	// ErrFolderNotFound indicates the target's local folder does not exist.
	ErrFolderNotFound = errors.New("local folder does not exist")

	// ErrFolderAccess indicates the target's local folder is not readable.
	ErrFolderAccess = errors.New("local folder is not readable")

	// ErrAuth indicates the remote store rejected the target's credentials.
	ErrAuth = errors.New("credentials rejected by remote store")

	// ErrBucketNotFound indicates the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket does not exist")
)
