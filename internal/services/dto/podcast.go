package dto

import (
	"mime/multipart"
	"time"
)

// CreatePodcastRequest carries everything needed to publish an episode.
// Exactly one audio source must be set: AudioFile for the server-mediated
// multipart mode, AudioURL for the client-direct mode where the browser has
// already uploaded the bytes and only the URL reaches the server. The image
// source is optional in both modes.
type CreatePodcastRequest struct {
	Title            string  `form:"title" json:"title" validate:"required"`
	ShortDescription string  `form:"shortDescription" json:"shortDescription" validate:"required,max=200"`
	FullDescription  *string `form:"fullDescription" json:"fullDescription"`

	AudioURL string `form:"-" json:"audioUrl" validate:"omitempty,min=1"`
	ImageURL string `form:"-" json:"imageUrl"`

	AudioFile *multipart.FileHeader `form:"-" json:"-"`
	ImageFile *multipart.FileHeader `form:"-" json:"-"`
}

// UpdatePodcastRequest carries a partial edit. Nil pointers mean "leave
// unchanged"; a non-nil file or URL replaces the corresponding object. An
// explicit empty ImageURL resets the cover to the default.
type UpdatePodcastRequest struct {
	Title            *string `form:"-" json:"title" validate:"omitempty,min=1"`
	ShortDescription *string `form:"-" json:"shortDescription" validate:"omitempty,min=1,max=200"`
	FullDescription  *string `form:"-" json:"fullDescription"`

	AudioURL *string `form:"-" json:"audioUrl" validate:"omitempty,min=1"`
	ImageURL *string `form:"-" json:"imageUrl"`

	AudioFile *multipart.FileHeader `form:"-" json:"-"`
	ImageFile *multipart.FileHeader `form:"-" json:"-"`
}

// PodcastResponse mirrors the persisted record.
type PodcastResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription"`
	FullDescription  *string   `json:"fullDescription"`
	AudioURL         string    `json:"audioUrl"`
	ImageURL         *string   `json:"imageUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DeletePodcastResponse acknowledges a delete.
type DeletePodcastResponse struct {
	Success bool `json:"success"`
}
