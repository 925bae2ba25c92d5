package replace

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

func TestCompressorForPath(t *testing.T) {
	tests := []struct {
		path   string
		format archiveFormat
		ok     bool
	}{
		{"originals.tar.zst", archiveZstd, true},
		{"backups/old.tar.xz", archiveXz, true},
		{"originals.zip", "", false},
		{"originals.tar", "", false},
	}
	for _, tt := range tests {
		format, err := compressorForPath(tt.path)
		if tt.ok && (err != nil || format != tt.format) {
			t.Errorf("compressorForPath(%q) = %q, %v", tt.path, format, err)
		}
		if !tt.ok && !errors.Is(err, ErrUnsupportedArchive) {
			t.Errorf("compressorForPath(%q): got %v, want ErrUnsupportedArchive", tt.path, err)
		}
	}
}

func TestValidateRejectsUnsupportedArchive(t *testing.T) {
	opts := &Options{InputPath: "some/dir", ArchivePath: "out.zip"}
	if err := opts.Validate(); !errors.Is(err, ErrUnsupportedArchive) {
		t.Errorf("got %v, want ErrUnsupportedArchive", err)
	}
}

// readTarEntries decompresses an archive and returns name -> content
func readTarEntries(t *testing.T, path string) map[string]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	var decomp io.Reader
	switch {
	case filepath.Ext(path) == ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			t.Fatalf("zstd reader: %v", err)
		}
		defer zr.Close()
		decomp = zr
	case filepath.Ext(path) == ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			t.Fatalf("xz reader: %v", err)
		}
		decomp = xr
	default:
		t.Fatalf("unexpected archive extension: %s", path)
	}

	entries := make(map[string]string)
	tr := tar.NewReader(decomp)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar next: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("tar read %s: %v", header.Name, err)
		}
		entries[header.Name] = string(data)
	}
	return entries
}

func TestReplaceArchivesOriginals(t *testing.T) {
	for _, ext := range []string{".tar.zst", ".tar.xz"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			writeTestFile(t, filepath.Join(dir, "a.jpg"), []byte("original a"))
			writeTestFile(t, filepath.Join(dir, "a_min.jpg"), []byte("mini a"))
			writeTestFile(t, filepath.Join(dir, "sub", "b.png"), []byte("original b"))
			writeTestFile(t, filepath.Join(dir, "sub", "b_min.png"), []byte("mini b"))

			archivePath := filepath.Join(t.TempDir(), "originals"+ext)
			opts := replaceOpts(dir)
			opts.ArchivePath = archivePath

			result, err := Replace(opts, nil)
			if err != nil {
				t.Fatalf("Replace failed: %v", err)
			}
			if !result.Success() || result.Replaced != 2 {
				t.Fatalf("replaced=%d errors=%v", result.Replaced, result.Errors)
			}
			if result.ArchivePath != archivePath || result.ArchiveBytes == 0 {
				t.Errorf("archive stats: path=%q bytes=%d", result.ArchivePath, result.ArchiveBytes)
			}

			entries := readTarEntries(t, archivePath)
			if len(entries) != 2 {
				t.Fatalf("archive has %d entries, want 2: %v", len(entries), entries)
			}
			if entries["a.jpg"] != "original a" {
				t.Errorf("a.jpg archived content = %q", entries["a.jpg"])
			}
			if entries["sub/b.png"] != "original b" {
				t.Errorf("sub/b.png archived content = %q", entries["sub/b.png"])
			}

			// Replacement still happened
			if string(readTestFile(t, filepath.Join(dir, "a.jpg"))) != "mini a" {
				t.Error("a.jpg not replaced")
			}
		})
	}
}

func TestReplaceDryRunWritesNoArchive(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.jpg"), []byte("original"))
	writeTestFile(t, filepath.Join(dir, "a_min.jpg"), []byte("mini"))

	archivePath := filepath.Join(t.TempDir(), "originals.tar.zst")
	opts := replaceOpts(dir)
	opts.ArchivePath = archivePath
	opts.DryRun = true

	if _, err := Replace(opts, nil); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if _, err := os.Stat(archivePath); !os.IsNotExist(err) {
		t.Error("dry run must not create the archive")
	}
}
