package repositories

import (
	"errors"
	"time"

	"fileshare-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("record not found")

// OwnerStats aggregates the files owned by a single user.
type OwnerStats struct {
	TotalFiles     int64 `json:"totalFiles"`
	TotalSizeBytes int64 `json:"totalSize"`
	TotalDownloads int64 `json:"totalDownloads"`
}

// FileRepository is the persistence layer for file records. The unique index
// on share_id acts as the storage-level backstop against generator
// collisions.
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a file repository backed by the given DB handle.
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create persists a new file record.
func (r *FileRepository) Create(file *models.File) error {
	return r.db.Create(file).Error
}

// FindByShareID looks a record up by its public share identifier.
func (r *FileRepository) FindByShareID(shareID string) (*models.File, error) {
	var file models.File
	if err := r.db.Where("share_id = ?", shareID).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// FindByID looks a record up by its internal identifier.
func (r *FileRepository) FindByID(id uuid.UUID) (*models.File, error) {
	var file models.File
	if err := r.db.Where("id = ?", id).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// FindByOwner returns one page of a user's files, newest first, together with
// the total count for pagination.
func (r *FileRepository) FindByOwner(ownerID uuid.UUID, page, limit int) ([]models.File, int64, error) {
	query := r.db.Model(&models.File{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var files []models.File
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&files).Error; err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

// RecentByOwner returns the user's most recently uploaded files.
func (r *FileRepository) RecentByOwner(ownerID uuid.UUID, limit int) ([]models.File, error) {
	var files []models.File
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// DeleteByID removes a record. Deleting a record that is already gone
// returns ErrNotFound.
func (r *FileRepository) DeleteByID(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.File{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementDownloadCount bumps the download counter with a single UPDATE so
// concurrent downloads cannot lose increments, then returns the stored value.
// There is deliberately no read-modify-write path for the counter.
func (r *FileRepository) IncrementDownloadCount(id uuid.UUID) (int64, error) {
	result := r.db.Model(&models.File{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var file models.File
	if err := r.db.Select("download_count").Where("id = ?", id).Take(&file).Error; err != nil {
		return 0, err
	}
	return file.DownloadCount, nil
}

// AggregateByOwner sums a user's files, sizes and downloads. A user with no
// files gets zeros, not an error.
func (r *FileRepository) AggregateByOwner(ownerID uuid.UUID) (OwnerStats, error) {
	var stats OwnerStats
	err := r.db.Model(&models.File{}).
		Select("COUNT(*) AS total_files, COALESCE(SUM(file_size), 0) AS total_size_bytes, COALESCE(SUM(download_count), 0) AS total_downloads").
		Where("owner_id = ?", ownerID).
		Scan(&stats).Error
	return stats, err
}

// FindExpired lists records past their retention window at the given instant.
// Expiry is evaluated lazily on access; this exists for external storage
// reclamation only.
func (r *FileRepository) FindExpired(now time.Time) ([]models.File, error) {
	var files []models.File
	if err := r.db.Where("expires_at < ?", now).Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
