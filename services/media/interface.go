package media

import (
	"context"
	"io"
	"time"
)

// MediaService defines the interface for media storage operations.
type MediaService interface {
	UploadImage(ctx context.Context, file io.Reader, destFolder string) (*Upload, error)
	Delete(ctx context.Context, publicID string) error
	DownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error)
}

// Upload describes a stored media asset.
type Upload struct {
	PublicID  string `json:"publicId"`
	SecureURL string `json:"url"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}
