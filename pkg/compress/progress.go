// pkg/compress/progress.go
package compress

import (
	"fmt"
	"strings"

	"github.com/creativeyann17/go-imgmin/pkg/imgmin"
	"github.com/vbauerster/mpb/v8"
)

// ProgressBarCallback creates a progress callback that displays multi-progress bars
// Returns the callback function and the progress container (call Wait() after compression)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	genericCb, progress := imgmin.ProgressBarCallback()

	// Adapt compress.ProgressEvent to the shared imgmin.ProgressEvent
	callback := func(event ProgressEvent) {
		genericCb(imgmin.ProgressEvent{
			Type:         imgmin.EventType(event.Type),
			FilePath:     event.FilePath,
			Current:      event.Current,
			Total:        event.Total,
			CurrentBytes: event.CurrentBytes,
			TotalBytes:   event.TotalBytes,
		})
	}

	return callback, progress
}

// FormatSummary formats a compression result into a human-readable summary string
func FormatSummary(result *Result, opts *Options) string {
	var sb strings.Builder

	if len(result.Errors) > 0 {
		fmt.Fprintf(&sb, "Completed with %d errors:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(&sb, "  - %v\n", e)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Files processed: %d / %d\n", result.FilesProcessed, result.FilesTotal)
	if result.FilesSkipped > 0 {
		fmt.Fprintf(&sb, "  Files skipped:   %d (compressed output was larger)\n", result.FilesSkipped)
	}
	fmt.Fprintf(&sb, "  Original size:   %s\n", imgmin.FormatSize(result.OriginalSize))
	if opts != nil && opts.DryRun {
		fmt.Fprintf(&sb, "  Compressed size: %s (estimated)\n", imgmin.FormatSize(result.CompressedSize))
	} else {
		fmt.Fprintf(&sb, "  Compressed size: %s\n", imgmin.FormatSize(result.CompressedSize))
	}
	if result.OriginalSize > 0 {
		fmt.Fprintf(&sb, "  Space saved:     %.1f%%\n", result.SavingsRatio())
	}

	if opts != nil && opts.DryRun {
		sb.WriteString("\nDry run complete - no files written.\n")
	}

	return sb.String()
}
