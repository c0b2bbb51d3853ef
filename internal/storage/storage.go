package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage defines the interface for blob object operations.
//
// Objects are addressed by key on the way in and by public URL on the way
// out: Save/Get/Exists take keys, while lifecycle cleanup works on the URLs
// persisted in podcast records. Owns is the explicit managed-reference
// predicate — a URL that Owns rejects (static bundled paths such as the
// default cover) must never be passed to DeleteByURL.
type Storage interface {
	// Save stores an object under the given key.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves an object by key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks whether an object is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error

	// DeleteByURL removes the object behind a public URL previously
	// returned by URL. Fails if the URL is not owned by this store.
	DeleteByURL(ctx context.Context, url string) error

	// URL returns the stable public URL for a stored object.
	URL(key string) string

	// Owns reports whether url points into this store's public URL space.
	Owns(url string) bool

	// SignUploadURL returns a short-lived URL a client can PUT the object
	// bytes to directly, bypassing the server.
	SignUploadURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
}

// Config holds storage configuration.
type Config struct {
	Type      string // local, cloudflare_r2
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For R2
	AccessKey string // For R2
	SecretKey string // For R2
	Endpoint  string // For R2 or custom S3
}

// NewStorage creates a storage backend based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
