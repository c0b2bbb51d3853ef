package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound) into
// a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrStorageFailure wraps a failed blob-store operation. The metadata record
// was not touched, so the request as a whole is retryable.
func ErrStorageFailure(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "File storage operation failed", http.StatusBadGateway)
}

// Predefined errors for frequent static cases.

var ErrPodcastNotFound = New(
	CodeNotFound,
	"podcast",
	"Podcast not found",
	http.StatusNotFound,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrFileTooLarge is returned when an uploaded file exceeds the configured
// size limit for its category.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType is returned when the MIME type of an upload is not in
// the allow-list for its category.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// ErrAudioSourceRequired: a podcast cannot exist without an audio object.
var ErrAudioSourceRequired = New(
	CodeValidationFailed,
	"validation",
	"An audio file or audio URL is required",
	http.StatusBadRequest,
)
