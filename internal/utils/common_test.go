package utils

import "testing"

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "simple", filename: "report.pdf", want: "pdf"},
		{name: "uppercase", filename: "PHOTO.JPG", want: "jpg"},
		{name: "multiple dots", filename: "archive.tar.gz", want: "gz"},
		{name: "no extension", filename: "README", want: ""},
		{name: "trailing dot", filename: "weird.", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetFileExtension(tt.filename); got != tt.want {
				t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestParseSizeString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "raw bytes", input: "1024", want: 1024},
		{name: "bytes suffix", input: "512B", want: 512},
		{name: "kilobytes", input: "2KB", want: 2048},
		{name: "megabytes", input: "10MB", want: 10 * 1024 * 1024},
		{name: "fractional megabytes", input: "1.5MB", want: int64(1.5 * 1024 * 1024)},
		{name: "gigabytes", input: "1GB", want: 1024 * 1024 * 1024},
		{name: "whitespace", input: " 10MB ", want: 10 * 1024 * 1024},
		{name: "garbage", input: "lots", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSizeString(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSizeString(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSizeString(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSizeString(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{bytes: 0, want: "0 B"},
		{bytes: 1023, want: "1023 B"},
		{bytes: 1024, want: "1.0 KB"},
		{bytes: 1536, want: "1.5 KB"},
		{bytes: 10 * 1024 * 1024, want: "10.0 MB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestMatchesMimeType(t *testing.T) {
	tests := []struct {
		name    string
		actual  string
		pattern string
		want    bool
	}{
		{name: "exact", actual: "image/png", pattern: "image/png", want: true},
		{name: "wildcard", actual: "text/plain", pattern: "text/*", want: true},
		{name: "wildcard mismatch", actual: "image/png", pattern: "text/*", want: false},
		{name: "prefix is not wildcard", actual: "textish/plain", pattern: "text/*", want: false},
		{name: "mismatch", actual: "image/png", pattern: "image/jpeg", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesMimeType(tt.actual, tt.pattern); got != tt.want {
				t.Errorf("MatchesMimeType(%q, %q) = %v, want %v", tt.actual, tt.pattern, got, tt.want)
			}
		})
	}
}
