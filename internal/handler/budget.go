package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/response"
)

type BudgetService interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, userID uuid.UUID, request *domain.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, request *domain.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID, request *domain.DeleteCategoryRequest) (*domain.DeleteCategoryResponse, error)

	ListExpenses(ctx context.Context, userID uuid.UUID, year, month int) ([]*domain.Expense, error)
	CreateExpense(ctx context.Context, userID uuid.UUID, request *domain.CreateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error

	Summary(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetSummary, error)
	Current(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetCurrent, error)
	SetSalary(ctx context.Context, userID uuid.UUID, request *domain.SetSalaryRequest) (*domain.BudgetMonth, error)
	SetLimits(ctx context.Context, userID uuid.UUID, request *domain.SetLimitsRequest) error
}

type BudgetHandler struct {
	service   BudgetService
	validator *validator.Validate
}

func NewBudgetHandler(service BudgetService) *BudgetHandler {
	return &BudgetHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// Summary handles GET /api/v1/budget/summary?year=&month=
func (h *BudgetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	year, month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID, year, month)
	if err != nil {
		response.BusinessError(w, "Failed to compute budget summary", err)
		return
	}

	response.Success(w, summary)
}

// Current handles GET /api/v1/budget/current?year=&month=
func (h *BudgetHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	year, month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	current, err := h.service.Current(r.Context(), userID, year, month)
	if err != nil {
		response.BusinessError(w, "Failed to load budget", err)
		return
	}

	response.Success(w, current)
}

// SetSalary handles POST /api/v1/budget/salary
func (h *BudgetHandler) SetSalary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.SetSalaryRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	record, err := h.service.SetSalary(r.Context(), userID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to save salary", err)
		return
	}

	response.Success(w, record)
}

// SetLimits handles POST /api/v1/budget/limits
func (h *BudgetHandler) SetLimits(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.SetLimitsRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	if err := h.service.SetLimits(r.Context(), userID, &req); err != nil {
		response.BusinessError(w, "Failed to save limits", err)
		return
	}

	response.Success(w, map[string]string{"status": "ok"})
}

// ListCategories handles GET /api/v1/categories
func (h *BudgetHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	categories, err := h.service.ListCategories(r.Context(), userID)
	if err != nil {
		response.BusinessError(w, "Failed to list categories", err)
		return
	}

	response.Success(w, categories)
}

// CreateCategory handles POST /api/v1/categories
func (h *BudgetHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.CreateCategoryRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), userID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to create category", err)
		return
	}

	response.Created(w, category)
}

// UpdateCategory handles PUT /api/v1/categories/{categoryId}
func (h *BudgetHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryId", customError.WrapCategoryNotFound)
	if !ok {
		return
	}

	var req domain.UpdateCategoryRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), userID, categoryID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to update category", err)
		return
	}

	response.Success(w, category)
}

// DeleteCategory handles POST /api/v1/categories/{categoryId}/delete. The
// body is optional.
func (h *BudgetHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryId", customError.WrapCategoryNotFound)
	if !ok {
		return
	}

	var req domain.DeleteCategoryRequest
	if !decodeOptional(w, r, h.validator, &req) {
		return
	}

	result, err := h.service.DeleteCategory(r.Context(), userID, categoryID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to delete category", err)
		return
	}

	response.Success(w, result)
}

// ListExpenses handles GET /api/v1/expenses?year=&month=
func (h *BudgetHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	year, month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	expenses, err := h.service.ListExpenses(r.Context(), userID, year, month)
	if err != nil {
		response.BusinessError(w, "Failed to list expenses", err)
		return
	}

	response.Success(w, expenses)
}

// CreateExpense handles POST /api/v1/expenses
func (h *BudgetHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.CreateExpenseRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), userID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to create expense", err)
		return
	}

	response.Created(w, expense)
}

// DeleteExpense handles DELETE /api/v1/expenses/{expenseId}
func (h *BudgetHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	expenseID, ok := pathID(w, r, "expenseId", customError.WrapExpenseNotFound)
	if !ok {
		return
	}

	if err := h.service.DeleteExpense(r.Context(), userID, expenseID); err != nil {
		response.BusinessError(w, "Failed to delete expense", err)
		return
	}

	response.Success(w, map[string]string{"status": "ok"})
}
