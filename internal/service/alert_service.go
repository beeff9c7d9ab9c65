package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/repository"
	customError "github.com/segyhp/budget-planner/pkg/errors"
)

type AlertService struct {
	AlertRepo repository.AlertRepository
}

func NewAlertService(alertRepo repository.AlertRepository) *AlertService {
	return &AlertService{AlertRepo: alertRepo}
}

func (s *AlertService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Alert, error) {
	alerts, err := s.AlertRepo.List(ctx, userID, unreadOnly)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if alerts == nil {
		alerts = []*domain.Alert{}
	}
	return alerts, nil
}

func (s *AlertService) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	if err := s.AlertRepo.MarkRead(ctx, userID, alertID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapAlertNotFound(alertID.String())
		}
		return customError.WrapDatabaseError(err)
	}
	return nil
}
