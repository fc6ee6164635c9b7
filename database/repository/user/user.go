package userRepo

import (
	"context"

	"imara/models"
)

// UserRepository is the persistence port for client profiles. Accounts are
// created through Firebase Auth; this store only mirrors profile data and
// the FCM token push delivery needs.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	UpdateFCMToken(ctx context.Context, userID, token string) error
}
