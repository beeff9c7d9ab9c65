package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/mocks"
	customError "github.com/segyhp/budget-planner/pkg/errors"
)

type budgetMocks struct {
	categories *mocks.MockCategoryRepository
	budgets    *mocks.MockBudgetRepository
	expenses   *mocks.MockExpenseRepository
	debts      *mocks.MockDebtRepository
	alerts     *mocks.MockAlertRepository
}

func newTestBudgetService(now time.Time) (*BudgetService, *budgetMocks) {
	m := &budgetMocks{
		categories: &mocks.MockCategoryRepository{},
		budgets:    &mocks.MockBudgetRepository{},
		expenses:   &mocks.MockExpenseRepository{},
		debts:      &mocks.MockDebtRepository{},
		alerts:     &mocks.MockAlertRepository{},
	}
	service := NewBudgetService(m.categories, m.budgets, m.expenses, m.debts, m.alerts)
	service.now = func() time.Time { return now }
	return service, m
}

// quietMonth makes threshold checks after a write find nothing to alert on.
func (m *budgetMocks) quietMonth() {
	m.budgets.On("GetMonth", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows).Maybe()
	m.categories.On("ListActive", mock.Anything, mock.Anything).Return([]*domain.Category{}, nil).Maybe()
	m.budgets.On("EffectiveLimits", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(map[uuid.UUID]decimal.Decimal{}, nil).Maybe()
	m.expenses.On("SpentByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(map[uuid.UUID]decimal.Decimal{}, nil).Maybe()
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func category(userID uuid.UUID, name, tag, limit string) *domain.Category {
	return &domain.Category{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Tag:          tag,
		MonthlyLimit: money(limit),
		IsActive:     true,
	}
}

func clone(c *domain.Category) *domain.Category {
	copied := *c
	return &copied
}

func TestEnsureDefaultCategories(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("new user gets the starter set", func(t *testing.T) {
		service, m := newTestBudgetService(now)
		m.categories.On("Count", mock.Anything, userID).Return(0, nil)

		var created []*domain.Category
		m.categories.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { created = append(created, args.Get(1).(*domain.Category)) }).
			Return(nil)

		require.NoError(t, service.EnsureDefaultCategories(context.Background(), userID))

		require.Len(t, created, 11)
		assert.Equal(t, domain.UncategorizedName, created[0].Name)
		assert.True(t, created[0].IsSystem)
		assert.Equal(t, domain.CategoryTagUncategorized, created[0].Tag)

		tags := map[string]string{}
		for _, c := range created[1:] {
			assert.False(t, c.IsSystem)
			assert.True(t, c.MonthlyLimit.IsZero())
			tags[c.Name] = c.Tag
		}
		assert.Equal(t, domain.CategoryTagSavings, tags["Savings"])
		assert.Equal(t, domain.CategoryTagDebt, tags["Debt Payment"])
		assert.Equal(t, domain.CategoryTagRegular, tags["Groceries"])
	})

	t.Run("existing categories are left alone", func(t *testing.T) {
		service, m := newTestBudgetService(now)
		m.categories.On("Count", mock.Anything, userID).Return(4, nil)

		require.NoError(t, service.EnsureDefaultCategories(context.Background(), userID))
		m.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBudgetSummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	rent := category(userID, "Rent", domain.CategoryTagRegular, "1000")
	groceries := category(userID, "Groceries", domain.CategoryTagRegular, "500")
	savings := category(userID, "Savings", domain.CategoryTagSavings, "300")
	debt := category(userID, "Debt Payment", domain.CategoryTagDebt, "0")
	retired := uuid.New()

	service, m := newTestBudgetService(now)
	m.budgets.On("GetMonth", mock.Anything, userID, 2026, 3).Return(&domain.BudgetMonth{
		Salary:        money("3000"),
		OtherIncome:   money("200"),
		IncomeSources: []*domain.IncomeSource{{Name: "Tutoring", Amount: money("100")}},
	}, nil)
	m.categories.On("ListActive", mock.Anything, userID).Return([]*domain.Category{rent, groceries, savings, debt}, nil)
	m.budgets.On("EffectiveLimits", mock.Anything, userID, 2026, 3).Return(map[uuid.UUID]decimal.Decimal{rent.ID: money("1200")}, nil)
	m.expenses.On("SpentByCategory", mock.Anything, userID, 2026, 3).Return(map[uuid.UUID]decimal.Decimal{
		rent.ID:      money("1200"),
		groceries.ID: money("420"),
		retired:      money("50"),
	}, nil)
	m.debts.On("ListActive", mock.Anything, userID).Return([]*domain.Debt{
		{MinimumMonthlyPayment: money("50")},
		{MinimumMonthlyPayment: money("25")},
	}, nil)

	summary, err := service.Summary(context.Background(), userID, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 2026, summary.Year)
	assert.Equal(t, 3, summary.Month)
	assert.True(t, summary.TotalIncome.Equal(money("3300")))
	assert.True(t, summary.FixedTotal.Equal(money("1700")))
	assert.True(t, summary.PlannedSavings.Equal(money("300")))
	assert.True(t, summary.PlannedDebtPayment.Equal(money("75")), "falls back to debt minimums")
	assert.True(t, summary.RemainingFlex.Equal(money("1300")))
	assert.False(t, summary.OverBudget)
	assert.True(t, summary.TotalSpent.Equal(money("1670")))
	assert.True(t, summary.ProjectedTotal.Equal(money("5177")), "1670 over 10 days projected to 31")

	require.Len(t, summary.Categories, 4)
	assert.True(t, summary.Categories[0].MonthlyLimit.Equal(money("1200")))
	assert.Equal(t, domain.SpendStatusOver, summary.Categories[0].Status)
	assert.True(t, summary.Categories[0].Percent.Equal(money("100")))
	assert.Equal(t, domain.SpendStatusWarning, summary.Categories[1].Status)
	assert.True(t, summary.Categories[1].Percent.Equal(money("84")))
	assert.Equal(t, domain.SpendStatusOK, summary.Categories[2].Status)
	assert.True(t, summary.Categories[3].Percent.IsZero())

	assert.Equal(t, []string{
		"Allocate extra toward Savings.",
		"Increase Debt Payment for faster payoff.",
		"Create or grow a Flex category.",
	}, summary.Suggestions)
}

func TestBudgetSummary_Suggestions(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	tests := []struct {
		name       string
		salary     string
		categories []*domain.Category
		expected   []string
	}{
		{
			name:   "over budget cuts the largest limits",
			salary: "10000",
			categories: []*domain.Category{
				category(userID, "Dining", domain.CategoryTagRegular, "100"),
				category(userID, "Rent", domain.CategoryTagRegular, "15000"),
				category(userID, "Kids", domain.CategoryTagRegular, "0"),
				category(userID, "Groceries", domain.CategoryTagRegular, "400"),
				category(userID, "Transportation", domain.CategoryTagRegular, "50"),
			},
			expected: []string{
				"Reduce Rent by $3,000.00 to close the gap.",
				"Reduce Groceries by $80.00 to close the gap.",
				"Reduce Dining by $20.00 to close the gap.",
			},
		},
		{
			name:   "no savings planned",
			salary: "4000",
			categories: []*domain.Category{
				category(userID, "Rent", domain.CategoryTagRegular, "1500"),
			},
			expected: []string{
				"Add a Savings category at 10% of salary.",
				"Allocate extra toward Savings.",
				"Increase Debt Payment for faster payoff.",
				"Create or grow a Flex category.",
			},
		},
		{
			name:   "no income recorded",
			salary: "0",
			expected: []string{
				"Allocate extra toward Savings.",
				"Increase Debt Payment for faster payoff.",
				"Create or grow a Flex category.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestBudgetService(now)
			m.budgets.On("GetMonth", mock.Anything, userID, 2026, 2).Return(&domain.BudgetMonth{Salary: money(tt.salary)}, nil)
			m.categories.On("ListActive", mock.Anything, userID).Return(tt.categories, nil)
			m.budgets.On("EffectiveLimits", mock.Anything, userID, 2026, 2).Return(map[uuid.UUID]decimal.Decimal{}, nil)
			m.expenses.On("SpentByCategory", mock.Anything, userID, 2026, 2).Return(map[uuid.UUID]decimal.Decimal{}, nil)
			m.debts.On("ListActive", mock.Anything, userID).Return(nil, nil)

			summary, err := service.Summary(context.Background(), userID, 2026, 2)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, summary.Suggestions)
			assert.True(t, summary.ProjectedTotal.IsZero())
		})
	}
}

func TestBudgetSummary_PastMonthProjection(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	groceries := category(userID, "Groceries", domain.CategoryTagRegular, "500")

	service, m := newTestBudgetService(now)
	m.budgets.On("GetMonth", mock.Anything, userID, 2026, 2).Return(nil, sql.ErrNoRows)
	m.categories.On("ListActive", mock.Anything, userID).Return([]*domain.Category{groceries}, nil)
	m.budgets.On("EffectiveLimits", mock.Anything, userID, 2026, 2).Return(map[uuid.UUID]decimal.Decimal{}, nil)
	m.expenses.On("SpentByCategory", mock.Anything, userID, 2026, 2).Return(map[uuid.UUID]decimal.Decimal{groceries.ID: money("280")}, nil)
	m.debts.On("ListActive", mock.Anything, userID).Return(nil, nil)

	summary, err := service.Summary(context.Background(), userID, 2026, 2)

	require.NoError(t, err)
	assert.True(t, summary.ProjectedTotal.Equal(money("280")))
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.OverBudget)
}

func TestCheckThresholds(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	rent := category(userID, "Rent", domain.CategoryTagRegular, "1000")
	groceries := category(userID, "Groceries", domain.CategoryTagRegular, "500")
	dining := category(userID, "Dining", domain.CategoryTagRegular, "200")
	kids := category(userID, "Kids", domain.CategoryTagRegular, "0")

	service, m := newTestBudgetService(now)
	m.budgets.On("GetMonth", mock.Anything, userID, 2026, 3).Return(&domain.BudgetMonth{Salary: money("3000")}, nil)
	m.categories.On("ListActive", mock.Anything, userID).Return([]*domain.Category{rent, groceries, dining, kids}, nil)
	m.budgets.On("EffectiveLimits", mock.Anything, userID, 2026, 3).Return(map[uuid.UUID]decimal.Decimal{}, nil)
	m.expenses.On("SpentByCategory", mock.Anything, userID, 2026, 3).Return(map[uuid.UUID]decimal.Decimal{
		rent.ID:      money("1000"),
		groceries.ID: money("400"),
		dining.ID:    money("100"),
		kids.ID:      money("50"),
	}, nil)

	groceriesCode := "cat-" + groceries.ID.String() + "-80-2026-3"
	m.alerts.On("Exists", mock.Anything, userID, groceriesCode, 2026, 3).Return(true, nil)
	m.alerts.On("Exists", mock.Anything, userID, mock.Anything, 2026, 3).Return(false, nil)

	var raised []*domain.Alert
	m.alerts.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { raised = append(raised, args.Get(1).(*domain.Alert)) }).
		Return(nil)

	require.NoError(t, service.CheckThresholds(context.Background(), userID, 2026, 3))

	require.Len(t, raised, 2)

	assert.Equal(t, "cat-"+rent.ID.String()+"-100-2026-3", raised[0].Code)
	assert.Equal(t, domain.AlertLevelAlert, raised[0].Level)
	assert.Equal(t, "Rent is over the monthly limit.", raised[0].Message)
	require.NotNil(t, raised[0].CategoryID)
	assert.Equal(t, rent.ID, *raised[0].CategoryID)

	// 1550 spent in 10 days projects to 4805 against 3000 of income.
	assert.Equal(t, "pace-2026-3", raised[1].Code)
	assert.Equal(t, domain.AlertLevelAlert, raised[1].Level)
	assert.Equal(t, "Overall spending pace is projected to exceed the budget.", raised[1].Message)
	assert.Nil(t, raised[1].CategoryID)
}

func TestCheckThresholds_WarningAndSavingsAdjustedPace(t *testing.T) {
	now := time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	groceries := category(userID, "Groceries", domain.CategoryTagRegular, "500")
	savings := category(userID, "Savings", domain.CategoryTagSavings, "1000")

	service, m := newTestBudgetService(now)
	m.budgets.On("GetMonth", mock.Anything, userID, 2026, 3).Return(&domain.BudgetMonth{Salary: money("2000")}, nil)
	m.categories.On("ListActive", mock.Anything, userID).Return([]*domain.Category{groceries, savings}, nil)
	m.budgets.On("EffectiveLimits", mock.Anything, userID, 2026, 3).Return(map[uuid.UUID]decimal.Decimal{}, nil)
	m.expenses.On("SpentByCategory", mock.Anything, userID, 2026, 3).Return(map[uuid.UUID]decimal.Decimal{
		groceries.ID: money("450"),
	}, nil)
	m.alerts.On("Exists", mock.Anything, userID, mock.Anything, 2026, 3).Return(false, nil)
	m.alerts.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
		return a.Code == "cat-"+groceries.ID.String()+"-80-2026-3" &&
			a.Level == domain.AlertLevelWarning &&
			a.Message == "Groceries reached 80% of the monthly limit."
	})).Return(nil).Once()

	require.NoError(t, service.CheckThresholds(context.Background(), userID, 2026, 3))

	// 450 projected stays under 2000 - 1000 of income left after savings.
	m.alerts.AssertNumberOfCalls(t, "Create", 1)
	m.alerts.AssertExpectations(t)
}

func TestCreateCategory(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	service, m := newTestBudgetService(now)
	m.quietMonth()
	m.categories.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Name == "Gym" && c.Tag == domain.CategoryTagRegular && !c.IsSystem && c.IsActive
	})).Return(nil).Once()
	m.budgets.On("UpsertLimit", mock.Anything, mock.MatchedBy(func(l *domain.CategoryLimit) bool {
		return l.Year == 2026 && l.Month == 3 && l.MonthlyLimit.Equal(money("60"))
	})).Return(nil).Once()

	created, err := service.CreateCategory(context.Background(), userID, &domain.CreateCategoryRequest{
		Name:         "Gym",
		MonthlyLimit: money("60"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Gym", created.Name)
	m.categories.AssertExpectations(t)
	m.budgets.AssertExpectations(t)
}

func TestUpdateCategory(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("new limit applies from this month", func(t *testing.T) {
		service, m := newTestBudgetService(now)
		m.quietMonth()
		dining := category(userID, "Dining", domain.CategoryTagRegular, "200")
		m.categories.On("GetByID", mock.Anything, userID, dining.ID).Return(dining, nil)
		m.categories.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
			return c.Name == "Eating out" && c.MonthlyLimit.Equal(money("250"))
		})).Return(nil).Once()
		m.budgets.On("UpsertLimit", mock.Anything, mock.MatchedBy(func(l *domain.CategoryLimit) bool {
			return l.CategoryID == dining.ID && l.Year == 2026 && l.Month == 3 && l.MonthlyLimit.Equal(money("250"))
		})).Return(nil).Once()

		name, limit := "Eating out", money("250")
		updated, err := service.UpdateCategory(context.Background(), userID, dining.ID, &domain.UpdateCategoryRequest{Name: &name, MonthlyLimit: &limit})

		require.NoError(t, err)
		assert.Equal(t, "Eating out", updated.Name)
		m.budgets.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		service, m := newTestBudgetService(now)
		categoryID := uuid.New()
		m.categories.On("GetByID", mock.Anything, userID, categoryID).Return(nil, sql.ErrNoRows)

		_, err := service.UpdateCategory(context.Background(), userID, categoryID, &domain.UpdateCategoryRequest{})

		assert.ErrorIs(t, err, customError.ErrCategoryNotFound)
	})
}

func TestDeleteCategory(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	dining := category(userID, "Dining", domain.CategoryTagRegular, "200")
	groceries := category(userID, "Groceries", domain.CategoryTagRegular, "500")
	uncategorized := category(userID, domain.UncategorizedName, domain.CategoryTagUncategorized, "0")
	uncategorized.IsSystem = true
	inactive := category(userID, "Old", domain.CategoryTagRegular, "0")
	inactive.IsActive = false

	tests := []struct {
		name            string
		categoryID      uuid.UUID
		request         *domain.DeleteCategoryRequest
		setupMock       func(*budgetMocks)
		expectedCode    string
		expectedMovedTo uuid.UUID
	}{
		{
			name:       "moves expenses to uncategorized",
			categoryID: dining.ID,
			request:    &domain.DeleteCategoryRequest{},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetByID", mock.Anything, userID, dining.ID).Return(clone(dining), nil)
				m.categories.On("GetUncategorized", mock.Anything, userID).Return(uncategorized, nil)
				m.expenses.On("Reassign", mock.Anything, userID, dining.ID, uncategorized.ID).Return(nil).Once()
				m.categories.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
					return c.ID == dining.ID && !c.IsActive
				})).Return(nil).Once()
			},
			expectedMovedTo: uncategorized.ID,
		},
		{
			name:       "moves expenses to the replacement",
			categoryID: dining.ID,
			request:    &domain.DeleteCategoryRequest{ReplacementCategoryID: &groceries.ID},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetByID", mock.Anything, userID, dining.ID).Return(clone(dining), nil)
				m.categories.On("GetByID", mock.Anything, userID, groceries.ID).Return(groceries, nil)
				m.expenses.On("Reassign", mock.Anything, userID, dining.ID, groceries.ID).Return(nil).Once()
				m.categories.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedMovedTo: groceries.ID,
		},
		{
			name:       "system category",
			categoryID: uncategorized.ID,
			request:    &domain.DeleteCategoryRequest{},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetByID", mock.Anything, userID, uncategorized.ID).Return(uncategorized, nil)
			},
			expectedCode: customError.ErrCodeSystemCategory,
		},
		{
			name:       "inactive replacement",
			categoryID: dining.ID,
			request:    &domain.DeleteCategoryRequest{ReplacementCategoryID: &inactive.ID},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetByID", mock.Anything, userID, dining.ID).Return(clone(dining), nil)
				m.categories.On("GetByID", mock.Anything, userID, inactive.ID).Return(inactive, nil)
			},
			expectedCode: customError.ErrCodeCategoryNotFound,
		},
		{
			name:       "unknown category",
			categoryID: uuid.Nil,
			request:    &domain.DeleteCategoryRequest{},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetByID", mock.Anything, userID, uuid.Nil).Return(nil, sql.ErrNoRows)
			},
			expectedCode: customError.ErrCodeCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestBudgetService(now)
			tt.setupMock(m)
			m.quietMonth()

			result, err := service.DeleteCategory(context.Background(), userID, tt.categoryID, tt.request)

			if tt.expectedCode != "" {
				bizErr, ok := customError.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, bizErr.Code)
				m.expenses.AssertNotCalled(t, "Reassign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", result.Status)
			assert.Equal(t, tt.expectedMovedTo, result.MovedTo)
			m.expenses.AssertExpectations(t)
			m.categories.AssertExpectations(t)
		})
	}
}

func TestCreateExpense(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	userID := uuid.New()

	groceries := category(userID, "Groceries", domain.CategoryTagRegular, "500")
	inactive := category(userID, "Old", domain.CategoryTagRegular, "0")
	inactive.IsActive = false
	uncategorized := category(userID, domain.UncategorizedName, domain.CategoryTagUncategorized, "0")
	uncategorized.IsSystem = true

	tests := []struct {
		name             string
		request          domain.CreateExpenseRequest
		setupMock        func(*budgetMocks)
		expectedCode     string
		expectedCategory uuid.UUID
		expectedDate     time.Time
	}{
		{
			name:    "named category",
			request: domain.CreateExpenseRequest{Amount: money("42.10"), CategoryID: &groceries.ID, Date: domain.Date{Time: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetByID", mock.Anything, userID, groceries.ID).Return(groceries, nil)
			},
			expectedCategory: groceries.ID,
			expectedDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "no category and no date",
			request: domain.CreateExpenseRequest{Amount: money("9.99")},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetUncategorized", mock.Anything, userID).Return(uncategorized, nil)
			},
			expectedCategory: uncategorized.ID,
			expectedDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "recreates a missing uncategorized category",
			request: domain.CreateExpenseRequest{Amount: money("5")},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetUncategorized", mock.Anything, userID).Return(nil, sql.ErrNoRows)
				m.categories.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
					return c.IsSystem && c.Tag == domain.CategoryTagUncategorized
				})).Return(nil).Once()
			},
			expectedDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "inactive category",
			request: domain.CreateExpenseRequest{Amount: money("5"), CategoryID: &inactive.ID},
			setupMock: func(m *budgetMocks) {
				m.categories.On("GetByID", mock.Anything, userID, inactive.ID).Return(inactive, nil)
			},
			expectedCode: customError.ErrCodeCategoryNotFound,
		},
		{
			name:         "zero amount",
			request:      domain.CreateExpenseRequest{Amount: decimal.Zero},
			setupMock:    func(m *budgetMocks) {},
			expectedCode: customError.ErrCodeInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestBudgetService(now)
			tt.setupMock(m)
			m.quietMonth()
			m.expenses.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

			expense, err := service.CreateExpense(context.Background(), userID, &tt.request)

			if tt.expectedCode != "" {
				bizErr, ok := customError.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, bizErr.Code)
				m.expenses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			if tt.expectedCategory != uuid.Nil {
				assert.Equal(t, tt.expectedCategory, expense.CategoryID)
			}
			assert.Equal(t, tt.expectedDate, expense.Date)
			assert.Equal(t, userID, expense.UserID)
			m.categories.AssertExpectations(t)
		})
	}
}

func TestCreateExpense_ThresholdFailureDoesNotFailRequest(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	uncategorized := category(userID, domain.UncategorizedName, domain.CategoryTagUncategorized, "0")

	service, m := newTestBudgetService(now)
	m.categories.On("GetUncategorized", mock.Anything, userID).Return(uncategorized, nil)
	m.expenses.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.budgets.On("GetMonth", mock.Anything, userID, 2026, 3).Return(nil, errors.New("db down"))

	expense, err := service.CreateExpense(context.Background(), userID, &domain.CreateExpenseRequest{Amount: money("12")})

	require.NoError(t, err)
	assert.Equal(t, uncategorized.ID, expense.CategoryID)
}

func TestDeleteExpense_NotFound(t *testing.T) {
	service, m := newTestBudgetService(time.Now())
	userID, expenseID := uuid.New(), uuid.New()
	m.expenses.On("Delete", mock.Anything, userID, expenseID).Return(sql.ErrNoRows)

	err := service.DeleteExpense(context.Background(), userID, expenseID)

	assert.ErrorIs(t, err, customError.ErrExpenseNotFound)
}

func TestListExpenses_DefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC)
	service, m := newTestBudgetService(now)
	userID := uuid.New()
	m.expenses.On("ListMonth", mock.Anything, userID, 2026, 7).Return(nil, nil).Once()

	expenses, err := service.ListExpenses(context.Background(), userID, 0, 0)

	require.NoError(t, err)
	assert.NotNil(t, expenses)
	assert.Empty(t, expenses)
	m.expenses.AssertExpectations(t)
}

func TestSetSalary(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("defaults to the current month", func(t *testing.T) {
		service, m := newTestBudgetService(now)
		m.quietMonth()
		m.budgets.On("SaveMonth", mock.Anything, mock.MatchedBy(func(b *domain.BudgetMonth) bool {
			return b.UserID == userID && b.Year == 2026 && b.Month == 3 &&
				b.Salary.Equal(money("4200")) &&
				len(b.IncomeSources) == 2 &&
				b.IncomeSourcesTotal().Equal(money("650"))
		})).Return(nil).Once()

		record, err := service.SetSalary(context.Background(), userID, &domain.SetSalaryRequest{
			Salary: money("4200"),
			IncomeSources: []domain.IncomeSourceRequest{
				{Name: "Rental", Amount: money("600")},
				{Name: "Dividends", Amount: money("50")},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, record.Month)
		m.budgets.AssertExpectations(t)
	})

	t.Run("explicit month", func(t *testing.T) {
		service, m := newTestBudgetService(now)
		m.quietMonth()
		m.budgets.On("SaveMonth", mock.Anything, mock.MatchedBy(func(b *domain.BudgetMonth) bool {
			return b.Year == 2025 && b.Month == 12 && len(b.IncomeSources) == 0
		})).Return(nil).Once()

		_, err := service.SetSalary(context.Background(), userID, &domain.SetSalaryRequest{
			Salary: money("100"),
			Year:   ptr(2025),
			Month:  ptr(12),
		})

		require.NoError(t, err)
		m.budgets.AssertExpectations(t)
	})

	t.Run("negative income source", func(t *testing.T) {
		service, m := newTestBudgetService(now)

		_, err := service.SetSalary(context.Background(), userID, &domain.SetSalaryRequest{
			Salary:        money("100"),
			IncomeSources: []domain.IncomeSourceRequest{{Name: "Refund", Amount: money("-5")}},
		})

		assert.ErrorIs(t, err, customError.ErrInvalidAmount)
		m.budgets.AssertNotCalled(t, "SaveMonth", mock.Anything, mock.Anything)
	})
}

func TestSetLimits(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	groceries := category(userID, "Groceries", domain.CategoryTagRegular, "500")
	unknown := uuid.New()

	t.Run("stores limits for the month", func(t *testing.T) {
		service, m := newTestBudgetService(now)
		m.quietMonth()
		m.categories.On("GetByID", mock.Anything, userID, groceries.ID).Return(groceries, nil)
		m.budgets.On("UpsertLimit", mock.Anything, mock.MatchedBy(func(l *domain.CategoryLimit) bool {
			return l.UserID == userID && l.CategoryID == groceries.ID &&
				l.Year == 2026 && l.Month == 5 && l.MonthlyLimit.Equal(money("650"))
		})).Return(nil).Once()

		err := service.SetLimits(context.Background(), userID, &domain.SetLimitsRequest{
			Year:   2026,
			Month:  5,
			Limits: []domain.LimitRequest{{CategoryID: groceries.ID, MonthlyLimit: money("650")}},
		})

		require.NoError(t, err)
		m.budgets.AssertExpectations(t)
	})

	t.Run("category of another user", func(t *testing.T) {
		service, m := newTestBudgetService(now)
		m.categories.On("GetByID", mock.Anything, userID, unknown).Return(nil, sql.ErrNoRows)

		err := service.SetLimits(context.Background(), userID, &domain.SetLimitsRequest{
			Year:   2026,
			Month:  5,
			Limits: []domain.LimitRequest{{CategoryID: unknown, MonthlyLimit: money("10")}},
		})

		assert.ErrorIs(t, err, customError.ErrCategoryNotFound)
		m.budgets.AssertNotCalled(t, "UpsertLimit", mock.Anything, mock.Anything)
	})
}

func TestCurrentBudget(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	rent := category(userID, "Rent", domain.CategoryTagRegular, "1000")
	dining := category(userID, "Dining", domain.CategoryTagRegular, "200")

	service, m := newTestBudgetService(now)
	m.budgets.On("GetMonth", mock.Anything, userID, 2026, 3).Return(nil, sql.ErrNoRows)
	m.categories.On("ListActive", mock.Anything, userID).Return([]*domain.Category{rent, dining}, nil)
	m.budgets.On("EffectiveLimits", mock.Anything, userID, 2026, 3).Return(map[uuid.UUID]decimal.Decimal{rent.ID: money("1100")}, nil)
	m.debts.On("ListActive", mock.Anything, userID).Return(nil, nil)

	current, err := service.Current(context.Background(), userID, 0, 0)

	require.NoError(t, err)
	assert.True(t, current.Salary.IsZero())
	assert.NotNil(t, current.IncomeSources)
	assert.NotNil(t, current.Debts)
	require.Len(t, current.Categories, 2)
	assert.True(t, current.Categories[0].MonthlyLimit.Equal(money("1100")))
	assert.True(t, current.Categories[1].MonthlyLimit.Equal(money("200")))
	assert.True(t, rent.MonthlyLimit.Equal(money("1000")), "stored category is not modified")
}
