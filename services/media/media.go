package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"imara/config"
)

// CloudinaryMediaService implements MediaService backed by Cloudinary.
type CloudinaryMediaService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinaryMediaService builds a media service from the loaded app config.
func NewCloudinaryMediaService() (*CloudinaryMediaService, error) {
	cfg := config.AppConfig
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise cloudinary: %w", err)
	}
	return &CloudinaryMediaService{cld: cld, cloudName: cfg.CloudinaryCloudName}, nil
}

// UploadImage uploads an image stream into the given folder and returns the stored asset.
func (s *CloudinaryMediaService) UploadImage(ctx context.Context, file io.Reader, destFolder string) (*Upload, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       destFolder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("cloudinary returned no public ID")
	}
	return &Upload{
		PublicID:  result.PublicID,
		SecureURL: result.SecureURL,
		Width:     result.Width,
		Height:    result.Height,
	}, nil
}

// Delete removes an asset from Cloudinary given its public ID.
func (s *CloudinaryMediaService) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", publicID, err)
	}
	return nil
}

// DownloadURL constructs a delivery URL for a stored image.
func (s *CloudinaryMediaService) DownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve asset %s: %w", publicID, err)
	}
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build URL for %s: %w", publicID, err)
	}
	return url, nil
}
