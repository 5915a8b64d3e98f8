package services

import (
	"errors"
	"log"
	"time"

	"fileshare-api/internal/models"
	"fileshare-api/internal/repositories"
	"fileshare-api/internal/storage"

	"github.com/google/uuid"
)

// StoredUpload describes a blob that has already been written to the blob
// store and is waiting for its metadata record.
type StoredUpload struct {
	OriginalName string
	StoredName   string
	BlobPath     string
	MimeType     string
	SizeBytes    int64
}

// ShareService owns the share-link lifecycle: issuing share identifiers,
// lazy expiry, download accounting and owner authorization.
type ShareService struct {
	files     *repositories.FileRepository
	blobs     *storage.LocalStore
	retention time.Duration
	now       func() time.Time
}

// NewShareService creates the share-link manager. retentionDays controls how
// long a share stays downloadable after upload.
func NewShareService(files *repositories.FileRepository, blobs *storage.LocalStore, retentionDays int) *ShareService {
	return &ShareService{
		files:     files,
		blobs:     blobs,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// WithClock overrides the time source used for expiry checks.
func (s *ShareService) WithClock(now func() time.Time) *ShareService {
	s.now = now
	return s
}

// Issue creates the metadata record for a blob that was just written. The
// share ID is a fresh v4 UUID, generated independently of file content and
// owner so links cannot be enumerated. If the record cannot be persisted the
// blob is removed again and the original error is returned.
func (s *ShareService) Issue(ownerID uuid.UUID, upload StoredUpload) (*models.File, error) {
	now := s.now()
	file := &models.File{
		OriginalName: upload.OriginalName,
		StoredName:   upload.StoredName,
		BlobPath:     upload.BlobPath,
		FileSize:     upload.SizeBytes,
		MimeType:     upload.MimeType,
		OwnerID:      ownerID,
		ShareID:      uuid.NewString(),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.retention),
	}

	if err := s.files.Create(file); err != nil {
		// The blob must not outlive a failed metadata write.
		if rbErr := s.blobs.Remove(upload.BlobPath); rbErr != nil {
			log.Printf("Warning: failed to roll back blob %s: %v", upload.BlobPath, rbErr)
		}
		return nil, err
	}
	return file, nil
}

// ResolvePublic looks a record up by its share ID for anonymous access.
// Expiry is evaluated against the clock on every call, never precomputed.
func (s *ShareService) ResolvePublic(shareID string) (*models.PublicFile, error) {
	file, err := s.findByShareID(shareID)
	if err != nil {
		return nil, err
	}
	view := file.Public()
	return &view, nil
}

// AuthorizeDownload authorizes an anonymous download. It re-resolves the
// share, verifies the bytes are still on disk, and records the download
// before any byte is streamed, so an aborted transfer still counts as an
// authorized access.
func (s *ShareService) AuthorizeDownload(shareID string) (*models.File, error) {
	file, err := s.findByShareID(shareID)
	if err != nil {
		return nil, err
	}

	if !s.blobs.Exists(file.BlobPath) {
		log.Printf("Warning: blob missing for share %s: %s", shareID, file.BlobPath)
		return nil, ErrNotFound
	}

	count, err := s.files.IncrementDownloadCount(file.ID)
	if err != nil {
		// The record can vanish between resolve and increment when a delete
		// races the download.
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	file.DownloadCount = count
	return file, nil
}

// AuthorizeOwnerAction resolves a record by its internal ID and verifies the
// requester owns it.
func (s *ShareService) AuthorizeOwnerAction(fileID, requesterID uuid.UUID) (*models.File, error) {
	file, err := s.files.FindByID(fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if file.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	return file, nil
}

// Delete removes a file on behalf of its owner. The blob is deleted first and
// the record after, so metadata never points at bytes that were reachable
// before the record went away. A blob that is already gone does not fail the
// delete.
func (s *ShareService) Delete(fileID, requesterID uuid.UUID) error {
	file, err := s.AuthorizeOwnerAction(fileID, requesterID)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(file.BlobPath); err != nil {
		log.Printf("Warning: failed to delete blob %s: %v", file.BlobPath, err)
	}

	if err := s.files.DeleteByID(file.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AuthorizeShare gates sharing a file by email: only the owner may share, and
// an expired file cannot be shared further.
func (s *ShareService) AuthorizeShare(shareID string, requesterID uuid.UUID) (*models.File, error) {
	file, err := s.files.FindByShareID(shareID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if file.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	if file.IsExpired(s.now()) {
		return nil, ErrExpired
	}
	return file, nil
}

// ListOwned returns one page of the requester's files, newest first, with the
// total count.
func (s *ShareService) ListOwned(ownerID uuid.UUID, page, limit int) ([]models.File, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.files.FindByOwner(ownerID, page, limit)
}

// Recent returns the requester's most recently uploaded files.
func (s *ShareService) Recent(ownerID uuid.UUID, limit int) ([]models.File, error) {
	if limit < 1 {
		limit = 5
	}
	return s.files.RecentByOwner(ownerID, limit)
}

// AggregateStats sums the requester's files, bytes and downloads.
func (s *ShareService) AggregateStats(ownerID uuid.UUID) (repositories.OwnerStats, error) {
	return s.files.AggregateByOwner(ownerID)
}

// findByShareID resolves a share and applies the lazy expiry check shared by
// the anonymous operations.
func (s *ShareService) findByShareID(shareID string) (*models.File, error) {
	file, err := s.files.FindByShareID(shareID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if file.IsExpired(s.now()) {
		return nil, ErrExpired
	}
	return file, nil
}
