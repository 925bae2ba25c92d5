// pkg/replace/options.go
package replace

import "strings"

// DefaultMarker mirrors the compress-side marker suffix
const DefaultMarker = "_min"

// BackupSuffix is appended to the original file name while it is swapped out
const BackupSuffix = ".backup"

// Options configures the replace operation
type Options struct {
	// Input directory to scan for compressed/original pairs
	InputPath string

	// Marker identifies compressed files (stem + marker + extension)
	// Default: "_min"
	Marker string

	// Recursive walks subdirectories as well
	Recursive bool

	// ArchivePath, when set, collects every original into a tar archive before
	// it is replaced. Compression is selected by extension: .tar.zst or .tar.xz
	ArchivePath string

	// DryRun lists the pairs without touching any file
	DryRun bool

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Marker:    DefaultMarker,
		Recursive: true,
	}
}

// Validate checks if options are valid and applies defaults
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if strings.ContainsAny(o.Marker, `/\`) {
		return ErrInvalidMarker
	}
	if o.ArchivePath != "" {
		if _, err := compressorForPath(o.ArchivePath); err != nil {
			return err
		}
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
