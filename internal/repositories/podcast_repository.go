package repositories

import (
	"errors"

	"podcast_backend/internal/models"

	"gorm.io/gorm"
)

// ErrPodcastNotFound is returned when no record matches the given ID.
var ErrPodcastNotFound = errors.New("podcast not found")

// PodcastRepository wraps metadata-store access for podcast records.
// The *gorm.DB is passed per call so handlers can supply the request-scoped
// connection (or a transaction in tests).
type PodcastRepository interface {
	Create(db *gorm.DB, podcast *models.Podcast) error
	FindByID(db *gorm.DB, id string) (*models.Podcast, error)
	// FindAll returns every record ordered by creation time, newest first.
	FindAll(db *gorm.DB) ([]models.Podcast, error)
	Save(db *gorm.DB, podcast *models.Podcast) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)
}

type podcastRepository struct{}

func NewPodcastRepository() PodcastRepository {
	return &podcastRepository{}
}

func (r *podcastRepository) Create(db *gorm.DB, podcast *models.Podcast) error {
	return db.Create(podcast).Error
}

func (r *podcastRepository) FindByID(db *gorm.DB, id string) (*models.Podcast, error) {
	var podcast models.Podcast
	if err := db.First(&podcast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPodcastNotFound
		}
		return nil, err
	}
	return &podcast, nil
}

func (r *podcastRepository) FindAll(db *gorm.DB) ([]models.Podcast, error) {
	var podcasts []models.Podcast
	if err := db.Order("created_at DESC").Find(&podcasts).Error; err != nil {
		return nil, err
	}
	return podcasts, nil
}

func (r *podcastRepository) Save(db *gorm.DB, podcast *models.Podcast) error {
	return db.Save(podcast).Error
}

func (r *podcastRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Podcast{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPodcastNotFound
	}
	return nil
}

func (r *podcastRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&models.Podcast{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
