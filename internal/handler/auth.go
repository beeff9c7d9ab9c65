package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/pkg/response"
)

type AuthService interface {
	Register(ctx context.Context, request *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, request *domain.LoginRequest) (*domain.TokenResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, request *domain.ChangePasswordRequest) error
}

type AuthHandler struct {
	service   AuthService
	validator *validator.Validate
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		response.BusinessError(w, "Failed to register", err)
		return
	}

	response.Created(w, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		response.BusinessError(w, "Failed to log in", err)
		return
	}

	response.Success(w, token)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		response.BusinessError(w, "Failed to load profile", err)
		return
	}

	response.Success(w, user)
}

// ChangePassword handles POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.ChangePasswordRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		response.BusinessError(w, "Failed to change password", err)
		return
	}

	response.Success(w, map[string]string{"status": "ok"})
}
