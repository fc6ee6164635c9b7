package businessRepo

import (
	"context"

	"imara/models"
)

// BusinessRepository is the persistence port for business profiles.
type BusinessRepository interface {
	GetByID(ctx context.Context, businessID string) (*models.Business, error)
	ListActive(ctx context.Context, tag, city string) ([]models.Business, error)
	AddGalleryImage(ctx context.Context, businessID string, image models.GalleryImage) error
	IncrementBookingCount(ctx context.Context, businessID string) error
}
