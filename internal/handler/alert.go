package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/response"
)

type AlertService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Alert, error)
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) error
}

type AlertHandler struct {
	service AlertService
}

func NewAlertHandler(service AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

// ListAlerts handles GET /api/v1/alerts?unread=true
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	unreadOnly := false
	if raw := r.URL.Query().Get("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "unread must be true or false", err)
			return
		}
		unreadOnly = parsed
	}

	alerts, err := h.service.List(r.Context(), userID, unreadOnly)
	if err != nil {
		response.BusinessError(w, "Failed to list alerts", err)
		return
	}

	response.Success(w, alerts)
}

// MarkRead handles POST /api/v1/alerts/{alertId}/read
func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	alertID, ok := pathID(w, r, "alertId", customError.WrapAlertNotFound)
	if !ok {
		return
	}

	if err := h.service.MarkRead(r.Context(), userID, alertID); err != nil {
		response.BusinessError(w, "Failed to mark alert read", err)
		return
	}

	response.Success(w, map[string]string{"status": "ok"})
}
