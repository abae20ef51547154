// Package users stores registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
)

// Repository persists users. Create fails with common.ErrorAlreadyExists
// when the email is taken; lookups fail with common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
