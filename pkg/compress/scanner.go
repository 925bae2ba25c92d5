// pkg/compress/scanner.go
package compress

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/creativeyann17/go-imgmin/internal/codec"
)

type fileTask struct {
	Path       string
	OutputPath string
	Size       uint64
}

// OutputName derives the compressed sibling name: stem + marker + extension,
// in the same directory as the source.
func OutputName(path, marker string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + marker + ext
}

// IsMarked reports whether a file name already carries the marker suffix
func IsMarked(name, marker string) bool {
	return strings.Contains(name, marker+".")
}

// collectFiles scans the input directory for candidate images.
// Every scan is a fresh walk; entry-level failures are returned as non-fatal
// errors so the batch can continue with the remaining files.
func collectFiles(opts *Options) (tasks []fileTask, walkErrs []error, err error) {
	info, statErr := os.Stat(opts.InputPath)
	if statErr != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, opts.InputPath)
	}

	var ignores *ignoreSet
	if opts.UseGitignore {
		ignores, err = loadIgnoreSet(opts.InputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load gitignore patterns: %w", err)
		}
	}

	addCandidate := func(path string, size uint64) {
		name := filepath.Base(path)
		if _, ok := codec.FormatForPath(name); !ok {
			return
		}
		if IsMarked(name, opts.Marker) {
			return
		}
		if ignores != nil {
			rel, relErr := filepath.Rel(opts.InputPath, path)
			if relErr == nil && ignores.Match(rel) {
				return
			}
		}
		tasks = append(tasks, fileTask{
			Path:       path,
			OutputPath: OutputName(path, opts.Marker),
			Size:       size,
		})
	}

	if opts.Recursive {
		walkErr := filepath.WalkDir(opts.InputPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				walkErrs = append(walkErrs, fmt.Errorf("%s: %w", path, err))
				return nil
			}
			if d.IsDir() {
				if ignores != nil && path != opts.InputPath {
					rel, relErr := filepath.Rel(opts.InputPath, path)
					if relErr == nil && ignores.MatchDir(rel) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			fi, infoErr := d.Info()
			if infoErr != nil {
				walkErrs = append(walkErrs, fmt.Errorf("%s: %w", path, infoErr))
				return nil
			}
			if !fi.Mode().IsRegular() {
				return nil
			}
			addCandidate(path, uint64(fi.Size()))
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
			if entry.IsDir() {
				continue
			}
			fi, infoErr := entry.Info()
			if infoErr != nil {
				walkErrs = append(walkErrs, fmt.Errorf("%s: %w", entry.Name(), infoErr))
				continue
			}
			if !fi.Mode().IsRegular() {
				continue
			}
			addCandidate(filepath.Join(opts.InputPath, entry.Name()), uint64(fi.Size()))
		}
	}

	// Deterministic task order regardless of walk implementation
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Path < tasks[j].Path
	})

	return tasks, walkErrs, nil
}
