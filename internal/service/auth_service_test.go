package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/budget-planner/internal/auth"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/mocks"
	"github.com/segyhp/budget-planner/internal/repository"
	customError "github.com/segyhp/budget-planner/pkg/errors"
)

func newTestAuthService() (*AuthService, *mocks.MockUserRepository, *auth.JWTManager) {
	userRepo := &mocks.MockUserRepository{}
	jwt := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(userRepo, jwt), userRepo, jwt
}

func storedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: hash, Country: "Canada", Currency: "CAD"}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name             string
		request          domain.RegisterRequest
		setupMock        func(*mocks.MockUserRepository)
		expectedCode     string
		expectedCurrency string
	}{
		{
			name:    "defaults to USA",
			request: domain.RegisterRequest{Username: " alice ", Password: "secret1", FullName: "Alice A", Gender: "female"},
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "alice").Return(nil, sql.ErrNoRows)
				repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.Username == "alice" && u.Country == "USA" && !u.IsAdmin && u.PasswordHash != "secret1"
				})).Return(nil)
			},
			expectedCurrency: "USD",
		},
		{
			name:    "currency follows country",
			request: domain.RegisterRequest{Username: "raj", Password: "secret1", FullName: "Raj K", Gender: "male", Country: "India"},
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "raj").Return(nil, sql.ErrNoRows)
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedCurrency: "INR",
		},
		{
			name:    "username taken",
			request: domain.RegisterRequest{Username: "alice", Password: "secret1"},
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{Username: "alice"}, nil)
			},
			expectedCode: customError.ErrCodeUsernameTaken,
		},
		{
			name:    "lost insert race",
			request: domain.RegisterRequest{Username: "bob", Password: "secret1"},
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "bob").Return(nil, sql.ErrNoRows)
				repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
			},
			expectedCode: customError.ErrCodeUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, _ := newTestAuthService()
			tt.setupMock(userRepo)

			user, err := service.Register(context.Background(), &tt.request)

			if tt.expectedCode != "" {
				bizErr, ok := customError.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, bizErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCurrency, user.Currency)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestRegister_SeedsDefaultCategories(t *testing.T) {
	tests := []struct {
		name    string
		seedErr error
	}{
		{name: "seeded"},
		{name: "seeding failure keeps the account", seedErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, _ := newTestAuthService()
			seeder := &mocks.MockBudgetService{}
			service.Seeder = seeder

			userRepo.On("GetByUsername", mock.Anything, "carol").Return(nil, sql.ErrNoRows)
			userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			seeder.On("EnsureDefaultCategories", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(tt.seedErr).Once()

			user, err := service.Register(context.Background(), &domain.RegisterRequest{Username: "carol", Password: "secret1"})

			require.NoError(t, err)
			require.NotNil(t, user)
			seeder.AssertCalled(t, "EnsureDefaultCategories", mock.Anything, user.ID)
		})
	}
}

func TestLogin(t *testing.T) {
	user := storedUser(t, "secret1")

	tests := []struct {
		name         string
		username     string
		password     string
		found        bool
		expectedCode string
	}{
		{"valid", "alice", "secret1", true, ""},
		{"wrong password", "alice", "nope", true, customError.ErrCodeInvalidCredentials},
		{"unknown user", "mallory", "secret1", false, customError.ErrCodeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, jwt := newTestAuthService()
			if tt.found {
				userRepo.On("GetByUsername", mock.Anything, tt.username).Return(user, nil)
			} else {
				userRepo.On("GetByUsername", mock.Anything, tt.username).Return(nil, sql.ErrNoRows)
			}

			token, err := service.Login(context.Background(), &domain.LoginRequest{Username: tt.username, Password: tt.password})

			if tt.expectedCode != "" {
				bizErr, ok := customError.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, bizErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "bearer", token.TokenType)

			claims, err := jwt.Validate(token.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, user.ID.String(), claims.UserID)
		})
	}
}

func TestChangePassword(t *testing.T) {
	user := storedUser(t, "secret1")

	t.Run("rejects wrong current password", func(t *testing.T) {
		service, userRepo, _ := newTestAuthService()
		userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		err := service.ChangePassword(context.Background(), user.ID, &domain.ChangePasswordRequest{CurrentPassword: "bad", NewPassword: "secret2"})

		assert.ErrorIs(t, err, customError.ErrInvalidCredentials)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores a new hash", func(t *testing.T) {
		service, userRepo, _ := newTestAuthService()
		userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("UpdatePassword", mock.Anything, user.ID, mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "secret2")
		})).Return(nil)

		err := service.ChangePassword(context.Background(), user.ID, &domain.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"})

		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("creates missing admin", func(t *testing.T) {
		service, userRepo, _ := newTestAuthService()
		userRepo.On("GetByUsername", mock.Anything, "admin").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "admin" && u.IsAdmin
		})).Return(nil)

		require.NoError(t, service.EnsureAdmin(context.Background(), "admin", "admin123"))
		userRepo.AssertExpectations(t)
	})

	t.Run("keeps existing admin", func(t *testing.T) {
		service, userRepo, _ := newTestAuthService()
		userRepo.On("GetByUsername", mock.Anything, "admin").Return(&domain.User{Username: "admin", IsAdmin: true}, nil)

		require.NoError(t, service.EnsureAdmin(context.Background(), "admin", "admin123"))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name         string
		stored       *domain.User
		repoErr      error
		expected     bool
		expectedCode string
	}{
		{name: "admin", stored: &domain.User{IsAdmin: true}, expected: true},
		{name: "demoted admin", stored: &domain.User{IsAdmin: false}, expected: false},
		{name: "deleted account", repoErr: sql.ErrNoRows, expected: false},
		{name: "database failure", repoErr: errors.New("connection reset"), expectedCode: customError.ErrCodeDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, _ := newTestAuthService()
			userID := uuid.New()
			userRepo.On("GetByID", mock.Anything, userID).Return(tt.stored, tt.repoErr)

			isAdmin, err := service.IsAdmin(context.Background(), userID)

			if tt.expectedCode != "" {
				bizErr, ok := customError.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, bizErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, isAdmin)
		})
	}
}
