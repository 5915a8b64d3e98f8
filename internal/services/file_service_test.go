package services

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fileshare-api/internal/config"

	"github.com/google/uuid"
)

func newTestFileService() *FileService {
	config.Config = config.MainConfig{
		Storage: config.StorageConfig{
			Validation: config.FileValidationConfig{
				MaxFileSize:       "10MB",
				MaxFileSizeBytes:  10 * 1024 * 1024,
				AllowedExtensions: []string{"txt", "pdf", "png"},
				BlockedExtensions: []string{"exe", "sh"},
			},
			Sharing: config.SharingConfig{RetentionDays: 30},
		},
	}
	return NewFileService()
}

func TestValidateFile(t *testing.T) {
	service := newTestFileService()

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{name: "allowed", filename: "notes.txt", size: 1024, wantErr: false},
		{name: "too large", filename: "big.pdf", size: 11 * 1024 * 1024, wantErr: true},
		{name: "at limit", filename: "exact.pdf", size: 10 * 1024 * 1024, wantErr: false},
		{name: "blocked extension", filename: "malware.exe", size: 10, wantErr: true},
		{name: "unlisted extension", filename: "movie.avi", size: 10, wantErr: true},
		{name: "no extension", filename: "README", size: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := service.ValidateFile(file)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateFile(%q, %d) expected error", tt.filename, tt.size)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateFile(%q, %d): %v", tt.filename, tt.size, err)
			}
		})
	}
}

func TestGenerateBlobPath(t *testing.T) {
	service := newTestFileService()

	blobPath, storedName, err := service.GenerateBlobPath("My Report.pdf")
	if err != nil {
		t.Fatalf("GenerateBlobPath: %v", err)
	}

	if !strings.HasSuffix(storedName, ".pdf") {
		t.Errorf("stored name %q lost the extension", storedName)
	}
	if _, err := uuid.Parse(strings.TrimSuffix(storedName, ".pdf")); err != nil {
		t.Errorf("stored name %q is not UUID-based: %v", storedName, err)
	}

	if filepath.Base(blobPath) != storedName {
		t.Errorf("blob path %q does not end in stored name %q", blobPath, storedName)
	}
	if filepath.Dir(blobPath) != time.Now().Format("2006-01-02") {
		t.Errorf("blob path %q is not partitioned by upload day", blobPath)
	}

	// Two uploads of the same file never collide on disk.
	_, other, err := service.GenerateBlobPath("My Report.pdf")
	if err != nil {
		t.Fatalf("GenerateBlobPath second: %v", err)
	}
	if other == storedName {
		t.Error("stored names collide for identical original names")
	}
}
