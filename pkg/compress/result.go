// pkg/compress/result.go
package compress

import (
	"fmt"
	"sort"
)

// FileResult records the outcome for a single source file
type FileResult struct {
	// Source file path
	Path string

	// Derived output path (stem + marker + extension)
	OutputPath string

	// Original size in bytes
	OriginalSize uint64

	// Compressed size in bytes (reported even when larger than the original)
	CompressedSize uint64

	// Skipped is set when the output was discarded because it did not shrink
	Skipped bool

	// Err is set when this file failed (unreadable, codec error, write error)
	Err error
}

// Failed returns true if this file could not be processed
func (fr *FileResult) Failed() bool {
	return fr.Err != nil
}

// SavingsRatio returns the per-file size reduction as a percentage
func (fr *FileResult) SavingsRatio() float64 {
	if fr.OriginalSize == 0 {
		return 0
	}
	return (1 - float64(fr.CompressedSize)/float64(fr.OriginalSize)) * 100
}

// Result contains aggregated statistics about the compression batch
type Result struct {
	// Per-file results, sorted by source path
	Files []FileResult

	// Total number of candidate files found
	FilesTotal int

	// Number of files successfully compressed (output kept)
	FilesProcessed int

	// Number of files whose output was discarded (DiscardLarger)
	FilesSkipped int

	// Total original size in bytes over processed files
	OriginalSize uint64

	// Total compressed size in bytes over processed files
	CompressedSize uint64

	// List of errors encountered (non-fatal, batch continued)
	Errors []error
}

// Aggregate folds per-file results into batch statistics.
// It is a pure function over its input; results are ordered by source path
// so reports are deterministic regardless of worker completion order.
func Aggregate(files []FileResult) *Result {
	sorted := make([]FileResult, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	result := &Result{
		Files:      sorted,
		FilesTotal: len(sorted),
	}

	for i := range sorted {
		fr := &sorted[i]
		switch {
		case fr.Err != nil:
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", fr.Path, fr.Err))
		case fr.Skipped:
			result.FilesSkipped++
		default:
			result.FilesProcessed++
			result.OriginalSize += fr.OriginalSize
			result.CompressedSize += fr.CompressedSize
		}
	}

	return result
}

// SavingsRatio returns the overall size reduction as a percentage.
// It is computed over total bytes, not as a mean of per-file ratios,
// so large files weigh proportionally to their size.
func (r *Result) SavingsRatio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1 - float64(r.CompressedSize)/float64(r.OriginalSize)) * 100
}

// Success returns true if no file failed
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}
