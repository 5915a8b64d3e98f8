package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File represents one uploaded file's metadata. The bytes themselves live in
// the blob store under BlobPath; ShareID is the only identifier ever exposed
// to anonymous callers.
type File struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OriginalName  string    `json:"originalName" gorm:"not null"`
	StoredName    string    `json:"storedName" gorm:"not null;uniqueIndex"`
	BlobPath      string    `json:"-" gorm:"not null"`
	FileSize      int64     `json:"fileSize" gorm:"not null"`
	MimeType      string    `json:"mimeType" gorm:"not null"`
	OwnerID       uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	ShareID       string    `json:"shareId" gorm:"not null;uniqueIndex"`
	DownloadCount int64     `json:"downloadCount" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	ExpiresAt     time.Time `json:"expiresAt" gorm:"not null;index"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// IsExpired reports whether the share is past its retention window at the
// given instant. Expiry is never stored; it is derived on every check.
func (f *File) IsExpired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}

// PublicFile is the anonymous view of a file record. It carries neither the
// internal ID nor the blob path.
type PublicFile struct {
	OriginalName  string    `json:"originalName"`
	MimeType      string    `json:"mimeType"`
	FileSize      int64     `json:"fileSize"`
	ShareID       string    `json:"shareId"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Public returns the view of the record safe to hand to anonymous callers.
func (f *File) Public() PublicFile {
	return PublicFile{
		OriginalName:  f.OriginalName,
		MimeType:      f.MimeType,
		FileSize:      f.FileSize,
		ShareID:       f.ShareID,
		DownloadCount: f.DownloadCount,
		CreatedAt:     f.CreatedAt,
		ExpiresAt:     f.ExpiresAt,
	}
}
