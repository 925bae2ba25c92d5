// pkg/replace/archive.go
package replace

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/creativeyann17/go-imgmin/pkg/imgmin"
)

// archiveFormat selects the compression wrapped around the originals tar
type archiveFormat string

const (
	archiveZstd archiveFormat = "zstd"
	archiveXz   archiveFormat = "xz"
)

// compressorForPath maps the archive extension to its compression format
func compressorForPath(path string) (archiveFormat, error) {
	switch {
	case strings.HasSuffix(path, ".tar.zst"):
		return archiveZstd, nil
	case strings.HasSuffix(path, ".tar.xz"):
		return archiveXz, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedArchive, path)
	}
}

// archiveWriter streams original files into a compressed tar before they are replaced
type archiveWriter struct {
	file    *os.File
	counter *imgmin.CountingWriter
	comp    io.WriteCloser
	tw      *tar.Writer
}

func newArchiveWriter(path string) (*archiveWriter, error) {
	format, err := compressorForPath(path)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create archive file: %w", err)
	}

	counter := &imgmin.CountingWriter{Writer: file}

	var comp io.WriteCloser
	switch format {
	case archiveZstd:
		comp, err = zstd.NewWriter(counter)
	case archiveXz:
		comp, err = xz.NewWriter(counter)
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("create %s writer: %w", format, err)
	}

	return &archiveWriter{
		file:    file,
		counter: counter,
		comp:    comp,
		tw:      tar.NewWriter(comp),
	}, nil
}

// AddFile appends one file to the archive under the given entry name
func (aw *archiveWriter) AddFile(path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("tar header: %w", err)
	}
	header.Name = filepath.ToSlash(name)

	if err := aw.tw.WriteHeader(header); err != nil {
		return fmt.Errorf("write tar header: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(aw.tw, src); err != nil {
		return fmt.Errorf("copy into archive: %w", err)
	}
	return nil
}

// Close flushes the tar and compression layers and returns bytes written to disk
func (aw *archiveWriter) Close() (uint64, error) {
	var firstErr error
	if err := aw.tw.Close(); err != nil {
		firstErr = err
	}
	if err := aw.comp.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := aw.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return uint64(aw.counter.Count), firstErr
}
