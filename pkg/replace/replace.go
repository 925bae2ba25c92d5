// pkg/replace/replace.go
package replace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type         EventType
	OriginalPath string
	Current      int64
	Total        int64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventPairComplete
	EventComplete
	EventError
)

type pairTask struct {
	OriginalPath   string
	CompressedPath string
}

// Replace swaps every original under opts.InputPath with its compressed
// marker-suffixed sibling. Pairs are processed sequentially; each swap goes
// through a backup so that at no point are both the original and compressed
// content lost. Per-pair failures restore the backup and the run continues.
//
// A failed restore is unrecoverable by the tool (the original survives in its
// backup file) and makes the returned error non-nil even though the rest of
// the run completed.
func Replace(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	pairs, walkErrs, err := collectPairs(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		PairsTotal: len(pairs),
		Errors:     walkErrs,
	}

	if progressCb != nil {
		progressCb(ProgressEvent{Type: EventStart, Total: int64(len(pairs))})
	}

	var arch *archiveWriter
	if opts.ArchivePath != "" && !opts.DryRun && len(pairs) > 0 {
		arch, err = newArchiveWriter(opts.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("create archive: %w", err)
		}
		result.ArchivePath = opts.ArchivePath
	}

	restoreFailed := false
	for i, pair := range pairs {
		var outcome Outcome
		if opts.DryRun {
			outcome = Outcome{
				OriginalPath:   pair.OriginalPath,
				CompressedPath: pair.CompressedPath,
			}
		} else {
			outcome = replacePair(pair, opts.InputPath, arch)
		}

		result.record(outcome)

		if outcome.Err != nil {
			if isRestoreFailure(outcome.Err) {
				restoreFailed = true
			}
			if progressCb != nil {
				progressCb(ProgressEvent{
					Type:         EventError,
					OriginalPath: pair.OriginalPath,
					Current:      int64(i + 1),
					Total:        int64(len(pairs)),
				})
			}
		} else if progressCb != nil {
			progressCb(ProgressEvent{
				Type:         EventPairComplete,
				OriginalPath: pair.OriginalPath,
				Current:      int64(i + 1),
				Total:        int64(len(pairs)),
			})
		}
	}

	if arch != nil {
		written, closeErr := arch.Close()
		if closeErr != nil {
			result.Errors = append(result.Errors, fmt.Errorf("close archive: %w", closeErr))
		}
		result.ArchiveBytes = written
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventComplete,
			Current: int64(result.Replaced),
			Total:   int64(len(pairs)),
		})
	}

	if restoreFailed {
		return result, fmt.Errorf("data loss risk: %w", ErrRestoreFailed)
	}
	return result, nil
}

// replacePair runs the backup-then-swap protocol for a single pair:
// archive original -> backup original -> swap in compressed -> verify -> drop backup.
// Any failure after the backup restores the original before returning.
func replacePair(pair pairTask, baseDir string, arch *archiveWriter) Outcome {
	outcome := Outcome{
		OriginalPath:   pair.OriginalPath,
		CompressedPath: pair.CompressedPath,
		BackupPath:     pair.OriginalPath + BackupSuffix,
	}

	origInfo, err := os.Stat(pair.OriginalPath)
	if err != nil {
		outcome.Err = fmt.Errorf("stat original: %w", err)
		return outcome
	}
	outcome.OriginalSize = uint64(origInfo.Size())

	// Hash the compressed content up front; the digest is checked again after
	// the swap to confirm the rename delivered the bytes intact.
	compData, err := os.ReadFile(pair.CompressedPath)
	if err != nil {
		outcome.Err = fmt.Errorf("read compressed file: %w", err)
		return outcome
	}
	wantSum := blake3.Sum256(compData)
	outcome.NewSize = uint64(len(compData))

	if arch != nil {
		name, relErr := filepath.Rel(baseDir, pair.OriginalPath)
		if relErr != nil {
			name = filepath.Base(pair.OriginalPath)
		}
		if err := arch.AddFile(pair.OriginalPath, name); err != nil {
			outcome.Err = fmt.Errorf("archive original: %w", err)
			return outcome
		}
	}

	if err := os.Rename(pair.OriginalPath, outcome.BackupPath); err != nil {
		outcome.Err = fmt.Errorf("create backup: %w", err)
		return outcome
	}

	if err := os.Rename(pair.CompressedPath, pair.OriginalPath); err != nil {
		outcome.Err = restore(outcome.BackupPath, pair.OriginalPath, fmt.Errorf("swap in compressed file: %w", err))
		return outcome
	}

	gotData, err := os.ReadFile(pair.OriginalPath)
	if err == nil && blake3.Sum256(gotData) != wantSum {
		err = ErrVerifyMismatch
	}
	if err != nil {
		// Move the compressed content back out of the way, then restore.
		if mvErr := os.Rename(pair.OriginalPath, pair.CompressedPath); mvErr != nil {
			outcome.Err = fmt.Errorf("verify failed (%v): %w", err, ErrRestoreFailed)
			return outcome
		}
		outcome.Err = restore(outcome.BackupPath, pair.OriginalPath, fmt.Errorf("verify: %w", err))
		return outcome
	}

	if err := os.Remove(outcome.BackupPath); err != nil {
		// The swap itself succeeded; the stale backup is reported, not rolled back
		outcome.Replaced = true
		outcome.Err = fmt.Errorf("remove backup: %w", err)
		return outcome
	}

	outcome.Replaced = true
	return outcome
}

// restore moves the backup back into place, escalating to ErrRestoreFailed
// when even that rename fails
func restore(backupPath, originalPath string, cause error) error {
	if err := os.Rename(backupPath, originalPath); err != nil {
		return fmt.Errorf("%v: %w", cause, ErrRestoreFailed)
	}
	return cause
}

func isRestoreFailure(err error) bool {
	return errors.Is(err, ErrRestoreFailed)
}

// originalName strips the first marker occurrence from a compressed file name:
// "photo_min.jpg" -> "photo.jpg"
func originalName(name, marker string) string {
	return strings.Replace(name, marker+".", ".", 1)
}

// collectPairs scans for marker-suffixed files whose original sibling exists
func collectPairs(opts *Options) (pairs []pairTask, walkErrs []error, err error) {
	info, statErr := os.Stat(opts.InputPath)
	if statErr != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, opts.InputPath)
	}

	addPair := func(path string) {
		name := filepath.Base(path)
		if !strings.Contains(name, opts.Marker+".") {
			return
		}
		originalPath := filepath.Join(filepath.Dir(path), originalName(name, opts.Marker))
		if fi, statErr := os.Stat(originalPath); statErr != nil || !fi.Mode().IsRegular() {
			return
		}
		pairs = append(pairs, pairTask{
			OriginalPath:   originalPath,
			CompressedPath: path,
		})
	}

	if opts.Recursive {
		walkErr := filepath.WalkDir(opts.InputPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				walkErrs = append(walkErrs, fmt.Errorf("%s: %w", path, err))
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			addPair(path)
			return nil
		})
		if walkErr != nil {
			return nil, nil, fmt.Errorf("directory walk failed: %w", walkErr)
		}
	} else {
		entries, readErr := os.ReadDir(opts.InputPath)
		if readErr != nil {
			return nil, nil, fmt.Errorf("read directory: %w", readErr)
		}
		for _, entry := range entries {
			if entry.IsDir() || !entry.Type().IsRegular() {
				continue
			}
			addPair(filepath.Join(opts.InputPath, entry.Name()))
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].OriginalPath < pairs[j].OriginalPath
	})

	return pairs, walkErrs, nil
}
