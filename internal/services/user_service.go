package services

import (
	"context"
	"fmt"

	"toyblox/internal/models"
	"toyblox/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RegisterInput is the public sign-up form.
type RegisterInput struct {
	FirstName string `json:"f_name" validate:"required"`
	LastName  string `json:"l_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// UpdateUserInput changes account fields. Empty fields are left as they are.
type UpdateUserInput struct {
	FirstName      string `json:"f_name"`
	LastName       string `json:"l_name"`
	Email          string `json:"email" validate:"omitempty,email"`
	Password       string `json:"password" validate:"omitempty,min=6"`
	ProfilePicture string `json:"profile_picture"`
}

// ProfileInput changes account and shipping fields together. Changing the
// password requires CurrentPassword.
type ProfileInput struct {
	FirstName       string `json:"f_name"`
	LastName        string `json:"l_name"`
	Email           string `json:"email" validate:"omitempty,email"`
	ProfilePicture  string `json:"profile_picture"`
	Address         string `json:"address"`
	PostalCode      string `json:"postal_code"`
	Country         string `json:"country"`
	PhoneNumber     string `json:"phone_number"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=6"`
}

// UserService handles account management.
type UserService struct {
	repo repositories.UserRepository
	auth *AuthService
	log  zerolog.Logger
}

func NewUserService(repo repositories.UserRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, auth: auth, log: log}
}

// Register creates a user with role user, a blank customer profile and a
// pending welcome email, and returns a token for the new account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := NormalizeEmail(in.Email)
	taken, err := s.repo.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", fmt.Errorf("email '%s' already registered: %w", email, ErrConflict)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:                uuid.New().String(),
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             email,
		Password:          hashed,
		Role:              models.RoleUser,
		VerificationToken: uuid.New().String(),
	}
	event, err := repositories.NewEvent(models.EventUserRegistered, user.ID, models.EventPayload{UserID: user.ID})
	if err != nil {
		return nil, "", err
	}
	if err := s.repo.Create(ctx, user, &models.Customer{}, event); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, token, nil
}

// Verify marks the holder of token as verified.
func (s *UserService) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("verification token is required: %w", ErrInvalidInput)
	}
	user, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	return s.repo.MarkVerified(ctx, user.ID)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Profile returns the user joined with its customer row.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// Update changes account fields. A new password is rehashed.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyIdentity(ctx, user, in.FirstName, in.LastName, in.Email, in.ProfilePicture); err != nil {
		return nil, err
	}
	if in.Password != "" {
		if user.Password, err = HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes account and shipping fields in one write.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*models.Profile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.repo.GetCustomerByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyIdentity(ctx, user, in.FirstName, in.LastName, in.Email, in.ProfilePicture); err != nil {
		return nil, err
	}
	if in.NewPassword != "" {
		if in.CurrentPassword == "" || !CheckPassword(user.Password, in.CurrentPassword) {
			return nil, fmt.Errorf("current password is incorrect: %w", ErrInvalidCredentials)
		}
		if user.Password, err = HashPassword(in.NewPassword); err != nil {
			return nil, err
		}
	}

	customer.Address = in.Address
	customer.PostalCode = in.PostalCode
	customer.Country = in.Country
	customer.PhoneNumber = in.PhoneNumber

	if err := s.repo.UpdateProfile(ctx, user, customer); err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, id)
}

func (s *UserService) applyIdentity(ctx context.Context, user *models.User, first, last, email, picture string) error {
	if first != "" {
		user.FirstName = first
	}
	if last != "" {
		user.LastName = last
	}
	if picture != "" {
		user.ProfilePicture = picture
	}
	if email == "" {
		return nil
	}
	email = NormalizeEmail(email)
	if email == user.Email {
		return nil
	}
	taken, err := s.repo.EmailTaken(ctx, email, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("email '%s' already registered: %w", email, ErrConflict)
	}
	user.Email = email
	return nil
}

// ChangeRole sets a user's role.
func (s *UserService) ChangeRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrInvalidInput)
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Str("role", string(role)).Msg("user role changed")
	return user, nil
}

// Delete soft-deletes a user. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("cannot delete your own account: %w", ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) Reactivate(ctx context.Context, id string) error {
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user reactivated")
	return nil
}
