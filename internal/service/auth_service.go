package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/auth"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/repository"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/utils"
)

const defaultCountry = "USA"

// CategorySeeder creates the starter categories of a new account
type CategorySeeder interface {
	EnsureDefaultCategories(ctx context.Context, userID uuid.UUID) error
}

type AuthService struct {
	UserRepo repository.UserRepository
	// Seeder is optional; when set, new accounts get default categories.
	Seeder CategorySeeder
	jwt    *auth.JWTManager
}

func NewAuthService(userRepo repository.UserRepository, jwt *auth.JWTManager) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		jwt:      jwt,
	}
}

// Register creates an account. The currency follows the country.
func (s *AuthService) Register(ctx context.Context, request *domain.RegisterRequest) (*domain.User, error) {
	username := strings.TrimSpace(request.Username)

	existing, err := s.UserRepo.GetByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, customError.WrapUsernameTaken(username)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	user, err := s.createUser(ctx, username, request.Password, request.FullName, request.Gender, request.Country, false)
	if err != nil {
		return nil, err
	}

	if s.Seeder != nil {
		if err := s.Seeder.EnsureDefaultCategories(ctx, user.ID); err != nil {
			slog.Warn("Failed to seed default categories", "user_id", user.ID, "error", err)
		}
	}
	return user, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.TokenResponse, error) {
	user, err := s.UserRepo.GetByUsername(ctx, strings.TrimSpace(request.Username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvalidCredentials()
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if !auth.CheckPassword(user.PasswordHash, request.Password) {
		return nil, customError.WrapInvalidCredentials()
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Me returns the authenticated user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUserNotFound(userID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return user, nil
}

// IsAdmin reads the admin flag from the stored account. A deleted account is not an admin.
func (s *AuthService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, customError.WrapDatabaseError(err)
	}
	return user.IsAdmin, nil
}

// ChangePassword replaces the password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, request *domain.ChangePasswordRequest) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, request.CurrentPassword) {
		return customError.WrapInvalidCredentials()
	}

	hash, err := auth.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}

	if err := s.UserRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.UserRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return customError.WrapDatabaseError(err)
	}

	if _, err := s.createUser(ctx, username, password, "Administrator", "unspecified", defaultCountry, true); err != nil {
		return err
	}
	slog.Info("Bootstrap admin created", "username", username)
	return nil
}

func (s *AuthService) createUser(ctx context.Context, username, password, fullName, gender, country string, admin bool) (*domain.User, error) {
	if country == "" {
		country = defaultCountry
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		FullName:     fullName,
		Gender:       gender,
		Country:      country,
		Currency:     utils.CurrencyForCountry(country),
		PasswordHash: hash,
		IsAdmin:      admin,
		CreatedAt:    time.Now(),
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, customError.WrapUsernameTaken(username)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return user, nil
}
