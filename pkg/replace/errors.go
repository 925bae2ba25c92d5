// pkg/replace/errors.go
package replace

import "errors"

var (
	// ErrInputRequired is returned when the input directory is not specified
	ErrInputRequired = errors.New("input directory is required")

	// ErrDirectoryNotFound is returned when the input path does not exist or is not a directory
	ErrDirectoryNotFound = errors.New("input path is not an existing directory")

	// ErrInvalidMarker is returned when the marker suffix is unusable in file names
	ErrInvalidMarker = errors.New("marker suffix must not contain path separators")

	// ErrVerifyMismatch is returned when the swapped-in content does not match the compressed file
	ErrVerifyMismatch = errors.New("content verification failed after swap")

	// ErrRestoreFailed is returned when a backup could not be restored.
	// The original content still exists in the backup file; this error requires
	// user attention and makes the whole invocation fail.
	ErrRestoreFailed = errors.New("backup restore failed, original preserved in backup file")

	// ErrUnsupportedArchive is returned for archive paths without a recognized extension
	ErrUnsupportedArchive = errors.New("archive path must end in .tar.zst or .tar.xz")
)
