package repositories

import (
	"context"
	"fmt"

	"toyblox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db     *gorm.DB
	outbox *GORMOutboxRepository
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db:     db,
		outbox: NewGORMOutboxRepository(db),
	}
}

// Create creates a new user and its customer profile in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User, customer *models.Customer, event *models.OutboxEvent) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("email '%s' already registered: %w", user.Email, ErrConflict)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if customer != nil {
			if customer.ID == "" {
				customer.ID = uuid.New().String()
			}
			customer.UserID = user.ID
			if err := tx.Create(customer).Error; err != nil {
				return fmt.Errorf("failed to create customer profile: %w", err)
			}
		}
		if event != nil {
			event.AggregateID = user.ID
			return r.outbox.Enqueue(tx, event)
		}
		return nil
	})
}

func (r *GORMUserRepository) first(ctx context.Context, what, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("user with %s %v: %w", what, arg, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s %v: %w", what, arg, err)
	}
	return &user, nil
}

// GetByID retrieves an active user by their ID.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "ID", "id = ?", id)
}

// GetByEmail retrieves an active user by their email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email", "email = ?", email)
}

// GetByVerificationToken retrieves the active user holding a verification token.
func (r *GORMUserRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return r.first(ctx, "verification token", "verification_token = ?", token)
}

func (r *GORMUserRepository) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check email %s: %w", email, err)
	}
	return n > 0, nil
}

// List returns all active users.
func (r *GORMUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update saves the identity, credential and role columns of an active user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"f_name":          user.FirstName,
			"l_name":          user.LastName,
			"email":           user.Email,
			"password":        user.Password,
			"role":            user.Role,
			"profile_picture": user.ProfilePicture,
		})
	if isDuplicate(res.Error) {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, ErrConflict)
	}
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", user.ID, ErrNotFound)
	}
	return nil
}

// UpdateProfile saves the user and its customer row in one transaction.
func (r *GORMUserRepository) UpdateProfile(ctx context.Context, user *models.User, customer *models.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"f_name":          user.FirstName,
				"l_name":          user.LastName,
				"email":           user.Email,
				"password":        user.Password,
				"profile_picture": user.ProfilePicture,
			})
		if isDuplicate(res.Error) {
			return fmt.Errorf("email '%s' already registered: %w", user.Email, ErrConflict)
		}
		if res.Error != nil {
			return fmt.Errorf("failed to update user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user with ID %s: %w", user.ID, ErrNotFound)
		}

		err := tx.Model(&models.Customer{}).
			Where("user_id = ?", user.ID).
			Updates(map[string]interface{}{
				"address":      customer.Address,
				"postal_code":  customer.PostalCode,
				"country":      customer.Country,
				"phone_number": customer.PhoneNumber,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update customer profile: %w", err)
		}
		return nil
	})
}

func (r *GORMUserRepository) MarkVerified(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"verified": true, "verification_token": ""})
	if res.Error != nil {
		return fmt.Errorf("failed to verify user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete soft-deletes a user.
func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// Reactivate clears the deletion mark of a soft-deleted user.
func (r *GORMUserRepository) Reactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.User{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return fmt.Errorf("failed to reactivate user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deleted user with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetProfile returns an active user joined with its customer row.
func (r *GORMUserRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var rows []models.Profile
	err := r.db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.f_name AS first_name, u.l_name AS last_name, u.email,
			COALESCE(u.profile_picture, '') AS profile_picture,
			u.role, u.verified, COALESCE(c.id, '') AS customer_id, COALESCE(c.address, '') AS address,
			COALESCE(c.postal_code, '') AS postal_code, COALESCE(c.country, '') AS country,
			COALESCE(c.phone_number, '') AS phone_number`).
		Joins("LEFT JOIN customers c ON c.user_id = u.id AND c.deleted_at IS NULL").
		Where("u.id = ? AND u.deleted_at IS NULL", userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get profile of user %s: %w", userID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("user with ID %s: %w", userID, ErrNotFound)
	}
	return &rows[0], nil
}

// GetCustomerByUserID returns the active customer profile owned by a user.
func (r *GORMUserRepository) GetCustomerByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "user_id = ?", userID).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("customer profile of user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer of user %s: %w", userID, err)
	}
	return &customer, nil
}
