// pkg/compress/errors.go
package compress

import "errors"

var (
	// ErrInputRequired is returned when the input directory is not specified
	ErrInputRequired = errors.New("input directory is required")

	// ErrDirectoryNotFound is returned when the input path does not exist or is not a directory
	ErrDirectoryNotFound = errors.New("input path is not an existing directory")

	// ErrInvalidQuality is returned when quality is outside the 1-100 range
	ErrInvalidQuality = errors.New("quality must be between 1 and 100")

	// ErrInvalidMarker is returned when the marker suffix is unusable in file names
	ErrInvalidMarker = errors.New("marker suffix must not contain path separators")
)
