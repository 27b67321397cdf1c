package repositories

import (
	"context"

	"toyblox/internal/models"
)

// UserRepository defines the interface for account data access.
type UserRepository interface {
	// Create inserts the user, its blank customer profile and the registration event atomically.
	Create(ctx context.Context, user *models.User, customer *models.Customer, event *models.OutboxEvent) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	// EmailTaken also counts soft-deleted users, since the email index is unique.
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User, customer *models.Customer) error
	MarkVerified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error

	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	GetCustomerByUserID(ctx context.Context, userID string) (*models.Customer, error)
}
