package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/repository"
	customError "github.com/segyhp/budget-planner/pkg/errors"
)

type SuggestionService struct {
	SuggestionRepo repository.SuggestionRepository
}

func NewSuggestionService(suggestionRepo repository.SuggestionRepository) *SuggestionService {
	return &SuggestionService{SuggestionRepo: suggestionRepo}
}

func (s *SuggestionService) Create(ctx context.Context, userID uuid.UUID, request *domain.CreateSuggestionRequest) (*domain.Suggestion, error) {
	suggestion := &domain.Suggestion{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   strings.TrimSpace(request.Message),
		Status:    domain.SuggestionStatusOpen,
		CreatedAt: time.Now(),
	}

	if err := s.SuggestionRepo.Create(ctx, suggestion); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return suggestion, nil
}

// ListMine returns the caller's own suggestions
func (s *SuggestionService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Suggestion, error) {
	suggestions, err := s.SuggestionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if suggestions == nil {
		suggestions = []*domain.Suggestion{}
	}
	return suggestions, nil
}
