package services

import (
	"context"
	"errors"
	"log"
	"time"

	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/adapters/persistence/repositories"
	"bdmart/internal/config"
	"bdmart/internal/pkg/jwt"
	"bdmart/internal/pkg/password"

	"gorm.io/gorm"
)

// Admin auth errors
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminInactive      = errors.New("admin account is inactive")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidStatus      = errors.New("invalid account status")
)

// AdminAuthService handles administrator authentication and account upkeep
type AdminAuthService struct {
	adminRepo repositories.AdminRepository
	cfg       *config.Config
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(adminRepo repositories.AdminRepository, cfg *config.Config) *AdminAuthService {
	return &AdminAuthService{adminRepo: adminRepo, cfg: cfg}
}

// AdminLoginInput represents admin login input
type AdminLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminAuthResult carries the issued session token and its expiry so the
// handler can align the cookie lifetime with the token.
type AdminAuthResult struct {
	Admin     *models.AdminUserResponse `json:"admin"`
	Token     string                    `json:"-"`
	ExpiresAt time.Time                 `json:"-"`
}

// Login authenticates an administrator and issues a session token.
// Only active accounts may authenticate.
func (s *AdminAuthService) Login(ctx context.Context, input *AdminLoginInput) (*AdminAuthResult, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsActive() {
		return nil, ErrAdminInactive
	}

	if !password.Verify(input.Password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := jwt.GenerateAdminToken(
		admin.ID,
		admin.Username,
		admin.Role,
		s.cfg.JWT.AdminSecret,
		s.cfg.JWT.AdminTokenHours,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Admin logged in: %s", admin.Username)

	return &AdminAuthResult{
		Admin:     admin.ToResponse(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetByID gets an admin account by ID
func (s *AdminAuthService) GetByID(ctx context.Context, id uint) (*models.AdminUser, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// UpdateProfileInput represents profile update input
type UpdateProfileInput struct {
	Email string `json:"email"`
}

// UpdateProfile updates the admin's own profile fields
func (s *AdminAuthService) UpdateProfile(ctx context.Context, id uint, input *UpdateProfileInput) (*models.AdminUser, error) {
	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != admin.Email {
		taken, err := s.adminRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		admin.Email = input.Email
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// ChangePassword replaces the admin's password after verifying the old one
func (s *AdminAuthService) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !password.Verify(oldPassword, admin.Password) {
		return ErrInvalidCredentials
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	admin.Password = hashed
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Admin password changed: %s", admin.Username)
	return nil
}

// SetStatus toggles an account between active and inactive. Accounts are
// never hard-deleted.
func (s *AdminAuthService) SetStatus(ctx context.Context, id uint, status string) error {
	if status != models.AdminStatusActive && status != models.AdminStatusInactive {
		return ErrInvalidStatus
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	return s.adminRepo.UpdateStatus(ctx, id, status)
}

// List lists admin accounts with pagination
func (s *AdminAuthService) List(ctx context.Context, offset, limit int) ([]*models.AdminUser, int64, error) {
	return s.adminRepo.List(ctx, offset, limit)
}
