package compress

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func scanOpts(dir string) *Options {
	opts := DefaultOptions()
	opts.InputPath = dir
	return opts
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		path, marker, want string
	}{
		{"photo.jpg", "_min", "photo_min.jpg"},
		{"dir/photo.JPEG", "_min", "dir/photo_min.JPEG"},
		{"icon.png", "-small", "icon-small.png"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.path, tt.marker); got != tt.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", tt.path, tt.marker, got, tt.want)
		}
	}
}

func TestIsMarked(t *testing.T) {
	tests := []struct {
		name, marker string
		want         bool
	}{
		{"photo_min.jpg", "_min", true},
		{"photo.jpg", "_min", false},
		{"photo_minimal.jpg", "_min", false}, // marker must sit right before the extension
		{"a_min.b_min.png", "_min", true},
	}
	for _, tt := range tests {
		if got := IsMarked(tt.name, tt.marker); got != tt.want {
			t.Errorf("IsMarked(%q, %q) = %v, want %v", tt.name, tt.marker, got, tt.want)
		}
	}
}

func TestCollectFilesFiltering(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.jpg"), []byte("x"))
	writeTestFile(t, filepath.Join(dir, "b.PNG"), []byte("x"))
	writeTestFile(t, filepath.Join(dir, "a_min.jpg"), []byte("x"))
	writeTestFile(t, filepath.Join(dir, "notes.txt"), []byte("x"))
	writeTestFile(t, filepath.Join(dir, "sub", "d.jpeg"), []byte("x"))

	tasks, walkErrs, err := collectFiles(scanOpts(dir))
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}
	if len(walkErrs) != 0 {
		t.Errorf("unexpected walk errors: %v", walkErrs)
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "sub", "d.jpeg"),
	}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, task := range tasks {
		if task.Path != want[i] {
			t.Errorf("tasks[%d] = %q, want %q", i, task.Path, want[i])
		}
	}

	if tasks[0].OutputPath != filepath.Join(dir, "a_min.jpg") {
		t.Errorf("output path = %q", tasks[0].OutputPath)
	}
}

func TestCollectFilesNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.jpg"), []byte("x"))
	writeTestFile(t, filepath.Join(dir, "sub", "d.jpeg"), []byte("x"))

	opts := scanOpts(dir)
	opts.Recursive = false

	tasks, _, err := collectFiles(opts)
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Path != filepath.Join(dir, "a.jpg") {
		t.Errorf("non-recursive scan picked up %v", tasks)
	}
}

func TestCollectFilesDirectoryNotFound(t *testing.T) {
	_, _, err := collectFiles(scanOpts(filepath.Join(t.TempDir(), "missing")))
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("got %v, want ErrDirectoryNotFound", err)
	}

	// A file path is not a directory either
	dir := t.TempDir()
	file := filepath.Join(dir, "a.jpg")
	writeTestFile(t, file, []byte("x"))
	if _, _, err := collectFiles(scanOpts(file)); !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("got %v, want ErrDirectoryNotFound", err)
	}
}

func TestCollectFilesRescanIsFresh(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.jpg"), []byte("x"))

	opts := scanOpts(dir)
	first, _, err := collectFiles(opts)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}

	writeTestFile(t, filepath.Join(dir, "b.jpg"), []byte("x"))
	second, _, err := collectFiles(opts)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}

	if len(first) != 1 || len(second) != 2 {
		t.Errorf("scans = %d then %d, want 1 then 2", len(first), len(second))
	}
}

func TestCollectFilesGitignore(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ".gitignore"), []byte("*.png\nignored/\n"))
	writeTestFile(t, filepath.Join(dir, "a.jpg"), []byte("x"))
	writeTestFile(t, filepath.Join(dir, "b.png"), []byte("x"))
	writeTestFile(t, filepath.Join(dir, "ignored", "c.jpg"), []byte("x"))
	writeTestFile(t, filepath.Join(dir, "kept", "d.jpg"), []byte("x"))

	opts := scanOpts(dir)
	opts.UseGitignore = true

	tasks, _, err := collectFiles(opts)
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "kept", "d.jpg"),
	}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks %v, want %d", len(tasks), tasks, len(want))
	}
	for i, task := range tasks {
		if task.Path != want[i] {
			t.Errorf("tasks[%d] = %q, want %q", i, task.Path, want[i])
		}
	}
}

func TestCollectFilesGitignoreDisabled(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ".gitignore"), []byte("*.png\n"))
	writeTestFile(t, filepath.Join(dir, "b.png"), []byte("x"))

	tasks, _, err := collectFiles(scanOpts(dir))
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("gitignore applied without opt-in: %v", tasks)
	}
}
