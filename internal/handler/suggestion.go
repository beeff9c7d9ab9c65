package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/pkg/response"
)

type SuggestionService interface {
	Create(ctx context.Context, userID uuid.UUID, request *domain.CreateSuggestionRequest) (*domain.Suggestion, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Suggestion, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListSuggestions(ctx context.Context) ([]*domain.Suggestion, error)
}

type SuggestionHandler struct {
	service   SuggestionService
	admin     AdminService
	validator *validator.Validate
}

func NewSuggestionHandler(service SuggestionService, admin AdminService) *SuggestionHandler {
	return &SuggestionHandler{
		service:   service,
		admin:     admin,
		validator: NewValidator(),
	}
}

// ListSuggestions handles GET /api/v1/suggestions
func (h *SuggestionHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	suggestions, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		response.BusinessError(w, "Failed to list suggestions", err)
		return
	}

	response.Success(w, suggestions)
}

// CreateSuggestion handles POST /api/v1/suggestions
func (h *SuggestionHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.CreateSuggestionRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	suggestion, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to submit suggestion", err)
		return
	}

	response.Created(w, suggestion)
}

// AdminListUsers handles GET /api/v1/admin/users
func (h *SuggestionHandler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		response.BusinessError(w, "Failed to list users", err)
		return
	}

	response.Success(w, users)
}

// AdminListSuggestions handles GET /api/v1/admin/suggestions
func (h *SuggestionHandler) AdminListSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.admin.ListSuggestions(r.Context())
	if err != nil {
		response.BusinessError(w, "Failed to list suggestions", err)
		return
	}

	response.Success(w, suggestions)
}
