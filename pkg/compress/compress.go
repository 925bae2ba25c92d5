// pkg/compress/compress.go
package compress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/creativeyann17/go-imgmin/internal/codec"
	"github.com/creativeyann17/go-imgmin/pkg/imgmin"
)

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type           EventType
	FilePath       string
	Current        int64
	Total          int64
	CurrentBytes   uint64
	TotalBytes     uint64
	CompressedSize uint64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventFileStart
	EventFileProgress
	EventFileComplete
	EventComplete
	EventError
)

// Compress recompresses every candidate image under opts.InputPath, writing
// marker-suffixed siblings next to the originals. Originals are never touched.
// Individual file failures are collected into the result; only directory-level
// and validation errors abort the batch.
func Compress(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tasks, walkErrs, err := collectFiles(opts)
	if err != nil {
		return nil, err
	}

	var totalBytes uint64
	for _, t := range tasks {
		totalBytes += t.Size
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:       EventStart,
			Total:      int64(len(tasks)),
			TotalBytes: totalBytes,
		})
	}

	// Workers send per-file results over a channel; aggregation stays
	// single-threaded on the collector side, no shared counters.
	taskCh := make(chan fileTask)
	resultCh := make(chan FileResult)

	var wg sync.WaitGroup
	for i := 0; i < opts.MaxThreads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				resultCh <- processFile(task, opts, progressCb)
			}
		}()
	}

	go func() {
		for _, task := range tasks {
			taskCh <- task
		}
		close(taskCh)
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	files := make([]FileResult, 0, len(tasks))
	for fr := range resultCh {
		if progressCb != nil {
			if fr.Err != nil {
				progressCb(ProgressEvent{
					Type:     EventError,
					FilePath: fr.Path,
				})
			} else {
				progressCb(ProgressEvent{
					Type:           EventFileComplete,
					FilePath:       fr.Path,
					Current:        int64(fr.OriginalSize),
					Total:          int64(fr.OriginalSize),
					CompressedSize: fr.CompressedSize,
				})
			}
		}
		files = append(files, fr)
	}

	result := Aggregate(files)
	if len(walkErrs) > 0 {
		result.Errors = append(walkErrs, result.Errors...)
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:           EventComplete,
			Current:        int64(result.FilesProcessed),
			Total:          int64(result.FilesTotal),
			TotalBytes:     result.OriginalSize,
			CompressedSize: result.CompressedSize,
		})
	}

	return result, nil
}

// processFile reads one image, recompresses it, and writes the suffixed output.
// An existing output file is overwritten.
func processFile(task fileTask, opts *Options, progressCb ProgressCallback) FileResult {
	fr := FileResult{
		Path:         task.Path,
		OutputPath:   task.OutputPath,
		OriginalSize: task.Size,
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:     EventFileStart,
			FilePath: task.Path,
			Total:    int64(task.Size),
		})
	}

	data, err := readFile(task, progressCb)
	if err != nil {
		fr.Err = fmt.Errorf("read source: %w", err)
		return fr
	}
	fr.OriginalSize = uint64(len(data))

	out, _, err := codec.Recode(data, codec.Options{
		Quality:   opts.Quality,
		MaxWidth:  opts.MaxWidth,
		MaxHeight: opts.MaxHeight,
	})
	if err != nil {
		fr.Err = fmt.Errorf("recode: %w", err)
		return fr
	}
	fr.CompressedSize = uint64(len(out))

	// The skip decision precedes the dry-run return so a preview reports
	// the same processed/skipped split as a real run
	if opts.DiscardLarger && fr.CompressedSize >= fr.OriginalSize {
		fr.Skipped = true
		return fr
	}

	if opts.DryRun {
		return fr
	}

	if err := os.WriteFile(task.OutputPath, out, 0644); err != nil {
		os.Remove(task.OutputPath)
		fr.Err = fmt.Errorf("write output: %w", err)
		return fr
	}

	return fr
}

// readFile reads the full source file, reporting read progress per chunk
func readFile(task fileTask, progressCb ProgressCallback) ([]byte, error) {
	src, err := os.Open(task.Path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var read uint64
	proxy := &imgmin.ProgressReader{
		Reader: src,
		OnRead: func(n int) {
			read += uint64(n)
			if progressCb != nil {
				progressCb(ProgressEvent{
					Type:         EventFileProgress,
					FilePath:     task.Path,
					Current:      int64(read),
					Total:        int64(task.Size),
					CurrentBytes: read,
				})
			}
		},
	}

	return io.ReadAll(proxy)
}
