// pkg/replace/result.go
package replace

import (
	"fmt"
	"strings"

	"github.com/creativeyann17/go-imgmin/pkg/imgmin"
)

// Outcome records the result for a single original/compressed pair
type Outcome struct {
	// Path of the original file (the replace target)
	OriginalPath string

	// Path of the compressed sibling that was swapped in
	CompressedPath string

	// Transient backup location used during the swap
	BackupPath string

	// Sizes before and after the swap
	OriginalSize uint64
	NewSize      uint64

	// Replaced is true once the original holds the compressed content
	// and the backup has been removed
	Replaced bool

	// Err is set when this pair failed; the original content is preserved
	// (either restored in place or left in the backup file)
	Err error
}

// Result contains the outcome of a replace run
type Result struct {
	// Per-pair outcomes, in processing order (sorted by original path)
	Outcomes []Outcome

	// Total number of pairs found
	PairsTotal int

	// Number of pairs successfully replaced
	Replaced int

	// Bytes freed by the run (sum of original minus new sizes)
	BytesSaved uint64

	// Archive of originals, when requested
	ArchivePath  string
	ArchiveBytes uint64

	// List of errors encountered (non-fatal, run continued)
	Errors []error
}

// record folds one outcome into the result. Replacement counts follow the
// Replaced flag alone: a pair whose swap succeeded but whose backup removal
// failed is both replaced and in error.
func (r *Result) record(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	if outcome.Replaced {
		r.Replaced++
		if outcome.OriginalSize > outcome.NewSize {
			r.BytesSaved += outcome.OriginalSize - outcome.NewSize
		}
	}
	if outcome.Err != nil {
		r.Errors = append(r.Errors, fmt.Errorf("%s: %w", outcome.OriginalPath, outcome.Err))
	}
}

// Success returns true if every pair was replaced without errors
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}

// Summary formats the result into a human-readable report
func (r *Result) Summary(dryRun bool) string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "Completed with %d errors:\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "  - %v\n", e)
		}
		sb.WriteString("\n")
	}

	if dryRun {
		fmt.Fprintf(&sb, "Would replace %d files (dry run, nothing touched)\n", r.PairsTotal)
		return sb.String()
	}

	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Files replaced: %d / %d\n", r.Replaced, r.PairsTotal)
	if r.BytesSaved > 0 {
		fmt.Fprintf(&sb, "  Space freed:    %s\n", imgmin.FormatSize(r.BytesSaved))
	}
	if r.ArchivePath != "" {
		fmt.Fprintf(&sb, "  Originals kept: %s (%s)\n", r.ArchivePath, imgmin.FormatSize(r.ArchiveBytes))
	}

	return sb.String()
}
