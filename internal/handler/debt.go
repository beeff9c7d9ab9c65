package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/payoff"
	"github.com/segyhp/budget-planner/pkg/response"
)

type DebtService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Debt, error)
	Create(ctx context.Context, userID uuid.UUID, request *domain.CreateDebtRequest) (*domain.Debt, error)
	Update(ctx context.Context, userID, debtID uuid.UUID, request *domain.UpdateDebtRequest) (*domain.Debt, error)
	Delete(ctx context.Context, userID, debtID uuid.UUID) error
	Simulate(ctx context.Context, userID uuid.UUID, request *domain.SimulationRequest) (*payoff.Result, error)
	Compare(ctx context.Context, userID uuid.UUID, request *domain.CompareRequest) (*payoff.Comparison, error)
}

type DebtHandler struct {
	service   DebtService
	validator *validator.Validate
}

func NewDebtHandler(service DebtService) *DebtHandler {
	return &DebtHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// ListDebts handles GET /api/v1/debts
func (h *DebtHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	debts, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.BusinessError(w, "Failed to list debts", err)
		return
	}

	response.Success(w, debts)
}

// CreateDebt handles POST /api/v1/debts
func (h *DebtHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.CreateDebtRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	debt, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to create debt", err)
		return
	}

	response.Created(w, debt)
}

// UpdateDebt handles PUT /api/v1/debts/{debtId}
func (h *DebtHandler) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	debtID, ok := pathID(w, r, "debtId", customError.WrapDebtNotFound)
	if !ok {
		return
	}

	var req domain.UpdateDebtRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	debt, err := h.service.Update(r.Context(), userID, debtID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to update debt", err)
		return
	}

	response.Success(w, debt)
}

// DeleteDebt handles DELETE /api/v1/debts/{debtId}
func (h *DebtHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	debtID, ok := pathID(w, r, "debtId", customError.WrapDebtNotFound)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, debtID); err != nil {
		response.BusinessError(w, "Failed to delete debt", err)
		return
	}

	response.Success(w, map[string]string{"status": "ok"})
}

// Simulate handles POST /api/v1/debts/simulate
func (h *DebtHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.SimulationRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	result, err := h.service.Simulate(r.Context(), userID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to simulate payoff plan", err)
		return
	}

	response.Success(w, result)
}

// Compare handles POST /api/v1/debts/simulate/compare
func (h *DebtHandler) Compare(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.CompareRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	comparison, err := h.service.Compare(r.Context(), userID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to compare strategies", err)
		return
	}

	response.Success(w, comparison)
}
