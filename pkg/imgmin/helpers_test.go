package imgmin

import "testing"

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		path   string
		maxLen int
		want   string
	}{
		{"short.jpg", 30, "short.jpg"},
		{"a/very/long/path/to/some/image.jpg", 12, "...image.jpg"},
	}
	for _, tt := range tests {
		got := TruncateLeft(tt.path, tt.maxLen)
		if got != tt.want {
			t.Errorf("TruncateLeft(%q, %d) = %q, want %q", tt.path, tt.maxLen, got, tt.want)
		}
		if len(got) > tt.maxLen {
			t.Errorf("TruncateLeft(%q, %d) = %q exceeds max length", tt.path, tt.maxLen, got)
		}
	}
}
