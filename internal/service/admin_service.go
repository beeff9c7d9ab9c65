package service

import (
	"context"

	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/repository"
	customError "github.com/segyhp/budget-planner/pkg/errors"
)

// AdminService backs the read-only admin panel.
type AdminService struct {
	UserRepo       repository.UserRepository
	SuggestionRepo repository.SuggestionRepository
}

func NewAdminService(userRepo repository.UserRepository, suggestionRepo repository.SuggestionRepository) *AdminService {
	return &AdminService{
		UserRepo:       userRepo,
		SuggestionRepo: suggestionRepo,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *AdminService) ListSuggestions(ctx context.Context) ([]*domain.Suggestion, error) {
	suggestions, err := s.SuggestionRepo.ListAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if suggestions == nil {
		suggestions = []*domain.Suggestion{}
	}
	return suggestions, nil
}
