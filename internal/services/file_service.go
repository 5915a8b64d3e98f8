package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"fileshare-api/internal/config"
	"fileshare-api/internal/utils"

	"github.com/google/uuid"
	"github.com/kerimovok/go-pkg-utils/errors"
)

// FileService validates uploads and decides where their bytes live.
type FileService struct {
	config config.StorageConfig
}

// NewFileService creates a new file service instance
func NewFileService() *FileService {
	return &FileService{
		config: config.GetConfig().Storage,
	}
}

// ValidateFile validates the uploaded file
func (s *FileService) ValidateFile(file *multipart.FileHeader) error {
	// Check file size
	if file.Size > s.config.Validation.MaxFileSizeBytes {
		return errors.BadRequestError("FILE_TOO_LARGE", fmt.Sprintf("File size exceeds maximum allowed size of %s", utils.FormatFileSize(s.config.Validation.MaxFileSizeBytes)))
	}

	ext := utils.GetFileExtensionFromHeader(file)
	if ext == "" {
		return errors.BadRequestError("INVALID_FILE", "File must have a valid extension")
	}

	// Check if extension is blocked
	for _, blocked := range s.config.Validation.BlockedExtensions {
		if ext == blocked {
			return errors.BadRequestError("BLOCKED_FILE_TYPE", fmt.Sprintf("File type .%s is not allowed", ext))
		}
	}

	// Check if extension is allowed
	if len(s.config.Validation.AllowedExtensions) > 0 {
		allowed := false
		for _, allowedExt := range s.config.Validation.AllowedExtensions {
			if ext == allowedExt {
				allowed = true
				break
			}
		}
		if !allowed {
			return errors.BadRequestError("INVALID_FILE_TYPE", fmt.Sprintf("File type .%s is not allowed", ext))
		}
	}

	// MIME type validation if enabled
	if s.config.Validation.StrictMimeValidation {
		if err := s.validateMimeType(file, ext); err != nil {
			return err
		}
	}

	return nil
}

// validateMimeType sniffs the file content and checks it against the MIME
// types expected for the extension.
func (s *FileService) validateMimeType(file *multipart.FileHeader, ext string) error {
	src, err := file.Open()
	if err != nil {
		return errors.InternalError("FILE_OPEN_ERROR", "Failed to open file for MIME type validation")
	}
	defer src.Close()

	// Read first 512 bytes for MIME type detection
	buffer := make([]byte, 512)
	_, err = src.Read(buffer)
	if err != nil && err != io.EOF {
		return errors.InternalError("FILE_READ_ERROR", "Failed to read file for MIME type validation")
	}

	detectedType := http.DetectContentType(buffer)

	expectedMimeTypes := map[string][]string{
		"jpg":  {"image/jpeg"},
		"jpeg": {"image/jpeg"},
		"png":  {"image/png"},
		"gif":  {"image/gif"},
		"webp": {"image/webp"},
		"pdf":  {"application/pdf"},
		"txt":  {"text/*"},
		"csv":  {"text/*"},
		"md":   {"text/*"},
		"zip":  {"application/zip"},
		"mp4":  {"video/mp4"},
		"mov":  {"video/quicktime"},
		"mp3":  {"audio/mpeg"},
		"wav":  {"audio/wav", "audio/wave"},
	}

	if expected, exists := expectedMimeTypes[ext]; exists {
		if !utils.IsValidMimeType(detectedType, expected) {
			return errors.BadRequestError("MIME_TYPE_MISMATCH", fmt.Sprintf("Expected MIME type for .%s files, got %s", ext, detectedType))
		}
	}

	return nil
}

// GenerateBlobPath produces the stored name and the blob path for an upload.
// Stored names are UUIDs with the original extension preserved; blobs are
// partitioned into one directory per upload day.
func (s *FileService) GenerateBlobPath(originalName string) (blobPath, storedName string, err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", "", errors.InternalError("UUID_GENERATION_ERROR", "Failed to generate stored file name")
	}

	storedName = id.String() + filepath.Ext(originalName)
	blobPath = filepath.Join(time.Now().Format("2006-01-02"), storedName)
	return blobPath, storedName, nil
}
