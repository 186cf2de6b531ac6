package profile

import (
	"context"

	"github.com/Abraxas-365/careerlens/pkg/kernel"
)

type Repository interface {
	// GetByUID returns ErrUserNotFound when no user has that uid
	GetByUID(ctx context.Context, uid kernel.UserID) (*User, error)

	// Create returns ErrUserAlreadyExists when the uid is taken
	Create(ctx context.Context, user *User) error

	// UpdateProfile replaces the stored profile wholesale
	UpdateProfile(ctx context.Context, uid kernel.UserID, p Profile) (*User, error)
}
