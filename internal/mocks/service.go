package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/pkg/payoff"
	"github.com/stretchr/testify/mock"
)

type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Debt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Debt), args.Error(1)
}

func (m *MockDebtService) Create(ctx context.Context, userID uuid.UUID, request *domain.CreateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) Update(ctx context.Context, userID, debtID uuid.UUID, request *domain.UpdateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, userID, debtID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) Delete(ctx context.Context, userID, debtID uuid.UUID) error {
	args := m.Called(ctx, userID, debtID)
	return args.Error(0)
}

func (m *MockDebtService) Simulate(ctx context.Context, userID uuid.UUID, request *domain.SimulationRequest) (*payoff.Result, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payoff.Result), args.Error(1)
}

func (m *MockDebtService) Compare(ctx context.Context, userID uuid.UUID, request *domain.CompareRequest) (*payoff.Comparison, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payoff.Comparison), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, request *domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.TokenResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, request *domain.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, request)
	return args.Error(0)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, userID uuid.UUID, request *domain.CreateTaskRequest) (*domain.Task, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, userID, taskID uuid.UUID, request *domain.UpdateTaskRequest) (*domain.Task, error) {
	args := m.Called(ctx, userID, taskID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Alert, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Alert), args.Error(1)
}

func (m *MockAlertService) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	args := m.Called(ctx, userID, alertID)
	return args.Error(0)
}

type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) Create(ctx context.Context, userID uuid.UUID, request *domain.CreateSuggestionRequest) (*domain.Suggestion, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Suggestion), args.Error(1)
}

func (m *MockSuggestionService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Suggestion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Suggestion), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockAdminService) ListSuggestions(ctx context.Context) ([]*domain.Suggestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Suggestion), args.Error(1)
}

type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) EnsureDefaultCategories(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockBudgetService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockBudgetService) CreateCategory(ctx context.Context, userID uuid.UUID, request *domain.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockBudgetService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, request *domain.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockBudgetService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID, request *domain.DeleteCategoryRequest) (*domain.DeleteCategoryResponse, error) {
	args := m.Called(ctx, userID, categoryID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeleteCategoryResponse), args.Error(1)
}

func (m *MockBudgetService) ListExpenses(ctx context.Context, userID uuid.UUID, year, month int) ([]*domain.Expense, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Expense), args.Error(1)
}

func (m *MockBudgetService) CreateExpense(ctx context.Context, userID uuid.UUID, request *domain.CreateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockBudgetService) DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error {
	args := m.Called(ctx, userID, expenseID)
	return args.Error(0)
}

func (m *MockBudgetService) Summary(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetSummary, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetSummary), args.Error(1)
}

func (m *MockBudgetService) Current(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetCurrent, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetCurrent), args.Error(1)
}

func (m *MockBudgetService) SetSalary(ctx context.Context, userID uuid.UUID, request *domain.SetSalaryRequest) (*domain.BudgetMonth, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetMonth), args.Error(1)
}

func (m *MockBudgetService) SetLimits(ctx context.Context, userID uuid.UUID, request *domain.SetLimitsRequest) error {
	args := m.Called(ctx, userID, request)
	return args.Error(0)
}
