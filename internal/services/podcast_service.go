package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"podcast_backend/internal/logger"
	"podcast_backend/internal/models"
	"podcast_backend/internal/repositories"
	"podcast_backend/internal/services/dto"
	"podcast_backend/internal/storage"
	"podcast_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Object key prefixes in blob storage.
const (
	CategoryAudio = "audio"
	CategoryImage = "images"
)

// ObjectKey builds a unique blob key for an upload so that no two uploads
// ever share an object.
func ObjectKey(category, filename string) string {
	return fmt.Sprintf("%s/%s-%s", category, uuid.NewString(), sanitizeFilename(filename))
}

// PodcastService is the asset lifecycle manager: it is the only component
// that mutates a record's audioUrl/imageUrl together with blob deletion.
//
// The two stores cannot commit atomically, so every operation follows the
// same ordering: store-new, commit metadata, best-effort delete-old. A crash
// mid-sequence can orphan an object but never leaves a record pointing at a
// deleted one — the metadata write is the single commit point.
type PodcastService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreatePodcastRequest) (*dto.PodcastResponse, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdatePodcastRequest) (*dto.PodcastResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	Get(db *gorm.DB, id string) (*dto.PodcastResponse, error)
	List(db *gorm.DB) ([]*dto.PodcastResponse, error)
}

// PodcastConfig holds upload validation limits and the default cover path.
type PodcastConfig struct {
	MaxAudioSize      int64
	MaxImageSize      int64
	AllowedAudioTypes []string
	AllowedImageTypes []string
	DefaultCoverPath  string
}

// DefaultPodcastConfig mirrors the production defaults.
func DefaultPodcastConfig() *PodcastConfig {
	return &PodcastConfig{
		MaxAudioSize:      200 * 1024 * 1024,
		MaxImageSize:      10 * 1024 * 1024,
		AllowedAudioTypes: []string{"audio/mpeg", "audio/wav", "audio/mp4"},
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/webp"},
		DefaultCoverPath:  "/default-cover.png",
	}
}

type podcastService struct {
	repo    repositories.PodcastRepository
	storage storage.Storage
	config  *PodcastConfig
}

func NewPodcastService(
	repo repositories.PodcastRepository,
	storage storage.Storage,
	config *PodcastConfig,
) PodcastService {
	if config == nil {
		config = DefaultPodcastConfig()
	}

	return &podcastService{
		repo:    repo,
		storage: storage,
		config:  config,
	}
}

// Create publishes a new episode. All validation runs before the first
// storage write, so a rejected request has no side effects. If the metadata
// insert fails after objects were stored, the objects are orphaned: that is
// logged and accepted, there is no cross-store rollback.
func (s *podcastService) Create(ctx context.Context, db *gorm.DB, req *dto.CreatePodcastRequest) (*dto.PodcastResponse, error) {
	title := strings.TrimSpace(req.Title)
	shortDescription := strings.TrimSpace(req.ShortDescription)

	if title == "" {
		return nil, apperrors.NewBadRequestError("Title is required")
	}
	if shortDescription == "" {
		return nil, apperrors.NewBadRequestError("Short description is required")
	}
	if len(shortDescription) > 200 {
		return nil, apperrors.NewBadRequestError("Short description must be at most 200 characters")
	}
	if req.AudioFile == nil && strings.TrimSpace(req.AudioURL) == "" {
		return nil, apperrors.ErrAudioSourceRequired
	}
	if err := s.validateFile(req.AudioFile, CategoryAudio); err != nil {
		return nil, err
	}
	if err := s.validateFile(req.ImageFile, CategoryImage); err != nil {
		return nil, err
	}

	audioURL := strings.TrimSpace(req.AudioURL)
	if req.AudioFile != nil {
		url, err := s.storeFile(ctx, req.AudioFile, CategoryAudio)
		if err != nil {
			return nil, err
		}
		audioURL = url
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if req.ImageFile != nil {
		url, err := s.storeFile(ctx, req.ImageFile, CategoryImage)
		if err != nil {
			// The audio object was stored this request; discard it so a
			// failed create leaves nothing behind.
			s.discardObject(ctx, audioURL)
			return nil, err
		}
		imageURL = url
	}
	if imageURL == "" {
		imageURL = s.config.DefaultCoverPath
	}

	podcast := &models.Podcast{
		Title:            title,
		ShortDescription: shortDescription,
		FullDescription:  normalizeOptional(req.FullDescription),
		AudioURL:         audioURL,
		ImageURL:         &imageURL,
	}

	if err := s.repo.Create(db, podcast); err != nil {
		logger.CtxError(ctx, "podcast insert failed, stored objects are orphaned",
			"audio_url", audioURL,
			"image_url", imageURL,
			"error", err.Error(),
		)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "podcast", "Failed to save podcast", 500)
	}

	return toPodcastResponse(podcast), nil
}

// Update applies a partial edit. For each replaced file the sequence is
// store-new, commit metadata, best-effort delete-old; the old object is only
// deleted when its URL is owned by the blob store and actually changed.
// Metadata-only edits never touch storage.
func (s *podcastService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdatePodcastRequest) (*dto.PodcastResponse, error) {
	podcast, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, handlePodcastError(err)
	}

	oldAudioURL := podcast.AudioURL
	oldImageURL := ""
	if podcast.ImageURL != nil {
		oldImageURL = *podcast.ImageURL
	}

	// Scalar validation precedes any storage write.
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.NewBadRequestError("Title cannot be empty")
		}
		podcast.Title = title
	}
	if req.ShortDescription != nil {
		shortDescription := strings.TrimSpace(*req.ShortDescription)
		if shortDescription == "" {
			return nil, apperrors.NewBadRequestError("Short description cannot be empty")
		}
		if len(shortDescription) > 200 {
			return nil, apperrors.NewBadRequestError("Short description must be at most 200 characters")
		}
		podcast.ShortDescription = shortDescription
	}
	if req.FullDescription != nil {
		podcast.FullDescription = normalizeOptional(req.FullDescription)
	}
	if err := s.validateFile(req.AudioFile, CategoryAudio); err != nil {
		return nil, err
	}
	if err := s.validateFile(req.ImageFile, CategoryImage); err != nil {
		return nil, err
	}

	newAudioURL := ""
	if req.AudioFile != nil {
		url, err := s.storeFile(ctx, req.AudioFile, CategoryAudio)
		if err != nil {
			return nil, err
		}
		newAudioURL = url
	} else if req.AudioURL != nil && strings.TrimSpace(*req.AudioURL) != "" {
		newAudioURL = strings.TrimSpace(*req.AudioURL)
	}

	newImageURL := ""
	if req.ImageFile != nil {
		url, err := s.storeFile(ctx, req.ImageFile, CategoryImage)
		if err != nil {
			// Abort without touching metadata; the audio object stored
			// this request must not leak.
			if req.AudioFile != nil {
				s.discardObject(ctx, newAudioURL)
			}
			return nil, err
		}
		newImageURL = url
	} else if req.ImageURL != nil {
		newImageURL = strings.TrimSpace(*req.ImageURL)
		// An explicit empty value resets the cover to the default
		// sentinel; the replaced object is cleaned up below.
		if newImageURL == "" {
			newImageURL = s.config.DefaultCoverPath
		}
	}

	if newAudioURL != "" {
		podcast.AudioURL = newAudioURL
	}
	if newImageURL != "" {
		podcast.ImageURL = &newImageURL
	}

	// The single commit point: after this write readers see the new
	// binding, before it they see the old one.
	if err := s.repo.Save(db, podcast); err != nil {
		if newAudioURL != "" || newImageURL != "" {
			logger.CtxError(ctx, "podcast update failed, newly stored objects are orphaned",
				"podcast_id", id,
				"audio_url", newAudioURL,
				"image_url", newImageURL,
				"error", err.Error(),
			)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "podcast", "Failed to update podcast", 500)
	}

	// Best-effort cleanup of replaced objects. Failures are logged and
	// swallowed: the record already points at the new objects.
	if newAudioURL != "" && newAudioURL != oldAudioURL {
		s.discardObject(ctx, oldAudioURL)
	}
	if newImageURL != "" && newImageURL != oldImageURL {
		s.discardObject(ctx, oldImageURL)
	}

	return toPodcastResponse(podcast), nil
}

// Delete removes the record and its managed objects. Object deletes are
// best-effort and independent: a failure deleting one never blocks the
// other or the row removal, favoring a clean listing over avoiding leaks.
func (s *podcastService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	podcast, err := s.repo.FindByID(db, id)
	if err != nil {
		return handlePodcastError(err)
	}

	s.discardObject(ctx, podcast.AudioURL)
	if podcast.ImageURL != nil {
		s.discardObject(ctx, *podcast.ImageURL)
	}

	if err := s.repo.Delete(db, id); err != nil {
		return handlePodcastError(err)
	}

	return nil
}

func (s *podcastService) Get(db *gorm.DB, id string) (*dto.PodcastResponse, error) {
	podcast, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, handlePodcastError(err)
	}
	return toPodcastResponse(podcast), nil
}

func (s *podcastService) List(db *gorm.DB) ([]*dto.PodcastResponse, error) {
	podcasts, err := s.repo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.PodcastResponse, 0, len(podcasts))
	for i := range podcasts {
		responses = append(responses, toPodcastResponse(&podcasts[i]))
	}
	return responses, nil
}

// storeFile writes the upload under a unique key and returns its public URL.
func (s *podcastService) storeFile(ctx context.Context, file *multipart.FileHeader, category string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperrors.ErrStorageFailure(fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	key := ObjectKey(category, file.Filename)
	if err := s.storage.Save(ctx, key, src, fileContentType(file)); err != nil {
		return "", apperrors.ErrStorageFailure(err)
	}

	return s.storage.URL(key), nil
}

// discardObject deletes a managed object, ignoring static/default paths and
// logging (never propagating) delete failures.
func (s *podcastService) discardObject(ctx context.Context, url string) {
	if url == "" || !s.storage.Owns(url) {
		return
	}
	if err := s.storage.DeleteByURL(ctx, url); err != nil {
		logger.CtxWarn(ctx, "failed to delete blob object, leaking it",
			"url", url,
			"error", err.Error(),
		)
	}
}

// validateFile checks size and MIME type against the category limits. A nil
// file is valid (the field was simply not supplied).
func (s *podcastService) validateFile(file *multipart.FileHeader, category string) error {
	if file == nil {
		return nil
	}

	maxSize := s.config.MaxAudioSize
	allowedTypes := s.config.AllowedAudioTypes
	if category == CategoryImage {
		maxSize = s.config.MaxImageSize
		allowedTypes = s.config.AllowedImageTypes
	}

	if file.Size > maxSize {
		return apperrors.ErrFileTooLarge
	}

	mimeType := fileContentType(file)
	for _, allowed := range allowedTypes {
		if mimeType == allowed {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

func handlePodcastError(err error) error {
	if err == repositories.ErrPodcastNotFound {
		return apperrors.ErrPodcastNotFound
	}
	return apperrors.InternalError(err)
}

func toPodcastResponse(podcast *models.Podcast) *dto.PodcastResponse {
	return &dto.PodcastResponse{
		ID:               podcast.ID,
		Title:            podcast.Title,
		ShortDescription: podcast.ShortDescription,
		FullDescription:  podcast.FullDescription,
		AudioURL:         podcast.AudioURL,
		ImageURL:         podcast.ImageURL,
		CreatedAt:        podcast.CreatedAt,
		UpdatedAt:        podcast.UpdatedAt,
	}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func fileContentType(file *multipart.FileHeader) string {
	if mimeType := file.Header.Get("Content-Type"); mimeType != "" {
		return mimeType
	}
	return mimeTypeFromFilename(file.Filename)
}

func mimeTypeFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeTypes := map[string]string{
		".mp3":  "audio/mpeg",
		".wav":  "audio/wav",
		".m4a":  "audio/mp4",
		".mp4":  "audio/mp4",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
	}

	if mime, ok := mimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// sanitizeFilename keeps object keys safe for URLs and filesystems.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	if cleaned == "" || cleaned == "." {
		return "file"
	}
	return cleaned
}
