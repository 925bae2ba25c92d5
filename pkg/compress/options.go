// pkg/compress/options.go
package compress

import (
	"runtime"
	"strings"
)

// DefaultMarker is the suffix inserted before the extension of compressed outputs.
// Files whose name already contains it are never picked up as candidates.
const DefaultMarker = "_min"

// Options configures the compression batch
type Options struct {
	// Input directory to scan for images
	InputPath string

	// Quality controls the codec size/fidelity tradeoff (1-100)
	// Default: 50
	Quality int

	// Marker is the suffix used to name outputs and detect already-compressed files
	// Default: "_min"
	Marker string

	// Maximum number of concurrent compression workers
	// Default: NumCPU-1 (minimum 1, one core left for the system)
	MaxThreads int

	// Recursive walks subdirectories as well
	Recursive bool

	// MaxWidth/MaxHeight downscale images to fit these bounds before re-encoding
	// 0 = no scaling
	MaxWidth  int
	MaxHeight int

	// DiscardLarger removes outputs that did not shrink and counts them as skipped
	// Default: false (outputs are kept and their size reported as-is)
	DiscardLarger bool

	// UseGitignore respects .gitignore files to exclude matching paths
	UseGitignore bool

	// DryRun recompresses in memory without writing any output
	DryRun bool

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Quality:    50,
		Marker:     DefaultMarker,
		MaxThreads: defaultThreads(),
		Recursive:  true,
	}
}

// Validate checks if options are valid and applies defaults
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.Quality < 1 || o.Quality > 100 {
		return ErrInvalidQuality
	}
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if strings.ContainsAny(o.Marker, `/\`) {
		return ErrInvalidMarker
	}
	if o.MaxThreads <= 0 {
		o.MaxThreads = defaultThreads()
	}
	if o.MaxWidth < 0 {
		o.MaxWidth = 0
	}
	if o.MaxHeight < 0 {
		o.MaxHeight = 0
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}

func defaultThreads() int {
	if n := runtime.NumCPU() - 1; n > 1 {
		return n
	}
	return 1
}
