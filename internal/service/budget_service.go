package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/repository"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/utils"
	"github.com/shopspring/decimal"
)

var defaultCategories = []struct {
	name string
	tag  string
}{
	{"Rent/Mortgage", domain.CategoryTagRegular},
	{"Utilities", domain.CategoryTagRegular},
	{"Groceries", domain.CategoryTagRegular},
	{"Dining", domain.CategoryTagRegular},
	{"Transportation", domain.CategoryTagRegular},
	{"Insurance", domain.CategoryTagRegular},
	{"Subscriptions", domain.CategoryTagRegular},
	{"Kids", domain.CategoryTagRegular},
	{"Savings", domain.CategoryTagSavings},
	{"Debt Payment", domain.CategoryTagDebt},
}

var (
	warningRatio  = decimal.RequireFromString("0.8")
	maxCutRatio   = decimal.RequireFromString("0.2")
	hundred       = decimal.NewFromInt(100)
	maxCutSuggest = 3
)

// BudgetService owns categories, expenses and monthly income, and raises the
// threshold alerts derived from them.
type BudgetService struct {
	CategoryRepo repository.CategoryRepository
	BudgetRepo   repository.BudgetRepository
	ExpenseRepo  repository.ExpenseRepository
	DebtRepo     repository.DebtRepository
	AlertRepo    repository.AlertRepository
	now          func() time.Time
}

func NewBudgetService(
	categoryRepo repository.CategoryRepository,
	budgetRepo repository.BudgetRepository,
	expenseRepo repository.ExpenseRepository,
	debtRepo repository.DebtRepository,
	alertRepo repository.AlertRepository,
) *BudgetService {
	return &BudgetService{
		CategoryRepo: categoryRepo,
		BudgetRepo:   budgetRepo,
		ExpenseRepo:  expenseRepo,
		DebtRepo:     debtRepo,
		AlertRepo:    alertRepo,
		now:          time.Now,
	}
}

// monthContext fills a missing year or month from the current date.
func (s *BudgetService) monthContext(year, month int) (int, int) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

// EnsureDefaultCategories seeds Uncategorized and the starter categories for
// a user who has none yet.
func (s *BudgetService) EnsureDefaultCategories(ctx context.Context, userID uuid.UUID) error {
	count, err := s.CategoryRepo.Count(ctx, userID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if count > 0 {
		return nil
	}

	if _, err := s.createCategory(ctx, userID, domain.UncategorizedName, decimal.Zero, domain.CategoryTagUncategorized, true); err != nil {
		return err
	}
	for _, item := range defaultCategories {
		if _, err := s.createCategory(ctx, userID, item.name, decimal.Zero, item.tag, false); err != nil {
			return err
		}
	}

	slog.Info("Default categories created", "user_id", userID, "count", len(defaultCategories)+1)
	return nil
}

func (s *BudgetService) createCategory(ctx context.Context, userID uuid.UUID, name string, limit decimal.Decimal, tag string, system bool) (*domain.Category, error) {
	now := s.now()
	category := &domain.Category{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		MonthlyLimit: limit,
		Tag:          tag,
		IsSystem:     system,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return category, nil
}

// uncategorized returns the system category, recreating it if it went missing.
func (s *BudgetService) uncategorized(ctx context.Context, userID uuid.UUID) (*domain.Category, error) {
	category, err := s.CategoryRepo.GetUncategorized(ctx, userID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	return s.createCategory(ctx, userID, domain.UncategorizedName, decimal.Zero, domain.CategoryTagUncategorized, true)
}

func (s *BudgetService) activeCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	category, err := s.CategoryRepo.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCategoryNotFound(categoryID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	if !category.IsActive {
		return nil, customError.WrapCategoryNotFound(categoryID.String())
	}
	return category, nil
}

// ListCategories returns the caller's active categories
func (s *BudgetService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	if err := s.EnsureDefaultCategories(ctx, userID); err != nil {
		return nil, err
	}

	categories, err := s.CategoryRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

// CreateCategory adds a category and records its limit for the current month
func (s *BudgetService) CreateCategory(ctx context.Context, userID uuid.UUID, request *domain.CreateCategoryRequest) (*domain.Category, error) {
	if request.MonthlyLimit.IsNegative() {
		return nil, customError.WrapInvalidAmount(fmt.Errorf("monthly limit %s", request.MonthlyLimit))
	}

	category, err := s.createCategory(ctx, userID, request.Name, request.MonthlyLimit, withDefault(request.Tag, domain.CategoryTagRegular), false)
	if err != nil {
		return nil, err
	}
	if request.IsActive != nil && !*request.IsActive {
		category.IsActive = false
		if err := s.CategoryRepo.Update(ctx, category); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	year, month := s.monthContext(0, 0)
	if err := s.upsertLimit(ctx, userID, category.ID, year, month, category.MonthlyLimit); err != nil {
		return nil, err
	}
	s.raiseThresholdAlerts(ctx, userID, year, month)

	return category, nil
}

// UpdateCategory applies a partial update. The resulting limit applies from
// the current month onward.
func (s *BudgetService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, request *domain.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.CategoryRepo.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCategoryNotFound(categoryID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	request.Apply(category)
	if category.MonthlyLimit.IsNegative() {
		return nil, customError.WrapInvalidAmount(fmt.Errorf("monthly limit %s", category.MonthlyLimit))
	}

	if err := s.CategoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCategoryNotFound(categoryID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	year, month := s.monthContext(0, 0)
	if err := s.upsertLimit(ctx, userID, category.ID, year, month, category.MonthlyLimit); err != nil {
		return nil, err
	}
	s.raiseThresholdAlerts(ctx, userID, year, month)

	return category, nil
}

// DeleteCategory deactivates a category and moves its expenses to the
// replacement, or to Uncategorized when none is given. System categories
// cannot be deleted.
func (s *BudgetService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID, request *domain.DeleteCategoryRequest) (*domain.DeleteCategoryResponse, error) {
	category, err := s.CategoryRepo.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCategoryNotFound(categoryID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	if category.IsSystem || category.Tag == domain.CategoryTagUncategorized {
		return nil, customError.WrapSystemCategory(category.Name)
	}

	var replacement *domain.Category
	if request != nil && request.ReplacementCategoryID != nil && *request.ReplacementCategoryID != categoryID {
		replacement, err = s.activeCategory(ctx, userID, *request.ReplacementCategoryID)
	} else {
		replacement, err = s.uncategorized(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.ExpenseRepo.Reassign(ctx, userID, category.ID, replacement.ID); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	category.IsActive = false
	if err := s.CategoryRepo.Update(ctx, category); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	year, month := s.monthContext(0, 0)
	s.raiseThresholdAlerts(ctx, userID, year, month)

	return &domain.DeleteCategoryResponse{Status: "ok", MovedTo: replacement.ID}, nil
}

// ListExpenses returns the expenses of a month, newest first. Zero year or
// month means the current one.
func (s *BudgetService) ListExpenses(ctx context.Context, userID uuid.UUID, year, month int) ([]*domain.Expense, error) {
	year, month = s.monthContext(year, month)

	expenses, err := s.ExpenseRepo.ListMonth(ctx, userID, year, month)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if expenses == nil {
		expenses = []*domain.Expense{}
	}
	return expenses, nil
}

// CreateExpense records spending. Without a category the expense goes to Uncategorized.
func (s *BudgetService) CreateExpense(ctx context.Context, userID uuid.UUID, request *domain.CreateExpenseRequest) (*domain.Expense, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidAmount(fmt.Errorf("expense amount %s", request.Amount))
	}

	var (
		category *domain.Category
		err      error
	)
	if request.CategoryID != nil {
		category, err = s.activeCategory(ctx, userID, *request.CategoryID)
	} else {
		category, err = s.uncategorized(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	date := utils.StartOfDay(s.now().UTC())
	if !request.Date.IsZero() {
		date = request.Date.Day()
	}

	expense := &domain.Expense{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: category.ID,
		Amount:     request.Amount,
		Date:       date,
		Note:       request.Note,
		CreatedAt:  s.now(),
	}
	if err := s.ExpenseRepo.Create(ctx, expense); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.raiseThresholdAlerts(ctx, userID, date.Year(), int(date.Month()))
	return expense, nil
}

// DeleteExpense removes one of the caller's expenses
func (s *BudgetService) DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error {
	if err := s.ExpenseRepo.Delete(ctx, userID, expenseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapExpenseNotFound(expenseID.String())
		}
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// SetSalary records the income of a month and replaces its income sources
func (s *BudgetService) SetSalary(ctx context.Context, userID uuid.UUID, request *domain.SetSalaryRequest) (*domain.BudgetMonth, error) {
	if err := checkAmounts(request.Salary, request.OtherIncome); err != nil {
		return nil, err
	}

	var year, month int
	if request.Year != nil {
		year = *request.Year
	}
	if request.Month != nil {
		month = *request.Month
	}
	year, month = s.monthContext(year, month)

	now := s.now()
	record := &domain.BudgetMonth{
		ID:            uuid.New(),
		UserID:        userID,
		Year:          year,
		Month:         month,
		Salary:        request.Salary,
		OtherIncome:   request.OtherIncome,
		CreatedAt:     now,
		IncomeSources: make([]*domain.IncomeSource, 0, len(request.IncomeSources)),
	}
	for _, source := range request.IncomeSources {
		if err := checkAmounts(source.Amount); err != nil {
			return nil, err
		}
		record.IncomeSources = append(record.IncomeSources, &domain.IncomeSource{
			ID:        uuid.New(),
			Name:      source.Name,
			Amount:    source.Amount,
			CreatedAt: now,
		})
	}

	if err := s.BudgetRepo.SaveMonth(ctx, record); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.raiseThresholdAlerts(ctx, userID, year, month)
	return record, nil
}

// SetLimits overrides category limits from the given month onward
func (s *BudgetService) SetLimits(ctx context.Context, userID uuid.UUID, request *domain.SetLimitsRequest) error {
	for _, item := range request.Limits {
		if _, err := s.activeCategory(ctx, userID, item.CategoryID); err != nil {
			return err
		}
		if err := s.upsertLimit(ctx, userID, item.CategoryID, request.Year, request.Month, item.MonthlyLimit); err != nil {
			return err
		}
	}

	s.raiseThresholdAlerts(ctx, userID, request.Year, request.Month)
	return nil
}

func (s *BudgetService) upsertLimit(ctx context.Context, userID, categoryID uuid.UUID, year, month int, limit decimal.Decimal) error {
	if limit.IsNegative() {
		return customError.WrapInvalidAmount(fmt.Errorf("monthly limit %s", limit))
	}

	err := s.BudgetRepo.UpsertLimit(ctx, &domain.CategoryLimit{
		UserID:       userID,
		CategoryID:   categoryID,
		Year:         year,
		Month:        month,
		MonthlyLimit: limit,
	})
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// Current returns the editable state of a month with the limits in effect for it.
func (s *BudgetService) Current(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetCurrent, error) {
	year, month = s.monthContext(year, month)

	record, err := s.budgetMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	categories, limits, err := s.categoriesWithLimits(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	effective := make([]*domain.Category, 0, len(categories))
	for _, category := range categories {
		c := *category
		c.MonthlyLimit = effectiveLimit(category, limits)
		effective = append(effective, &c)
	}

	debts, err := s.DebtRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if debts == nil {
		debts = []*domain.Debt{}
	}

	return &domain.BudgetCurrent{
		Year:          year,
		Month:         month,
		Salary:        record.Salary,
		OtherIncome:   record.OtherIncome,
		IncomeSources: record.IncomeSources,
		Categories:    effective,
		Debts:         debts,
	}, nil
}

// Summary computes the monthly overview. When no Debt Payment limit is
// planned, the planned debt payment falls back to the active debt minimums.
func (s *BudgetService) Summary(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetSummary, error) {
	year, month = s.monthContext(year, month)

	summary, err := s.summarize(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	if !summary.PlannedDebtPayment.IsPositive() {
		debts, err := s.DebtRepo.ListActive(ctx, userID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		minimums := decimal.Zero
		for _, debt := range debts {
			minimums = minimums.Add(debt.MinimumMonthlyPayment)
		}
		summary.PlannedDebtPayment = minimums
	}

	return summary, nil
}

func (s *BudgetService) budgetMonth(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetMonth, error) {
	record, err := s.BudgetRepo.GetMonth(ctx, userID, year, month)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.BudgetMonth{UserID: userID, Year: year, Month: month, IncomeSources: []*domain.IncomeSource{}}, nil
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if record.IncomeSources == nil {
		record.IncomeSources = []*domain.IncomeSource{}
	}
	return record, nil
}

func (s *BudgetService) categoriesWithLimits(ctx context.Context, userID uuid.UUID, year, month int) ([]*domain.Category, map[uuid.UUID]decimal.Decimal, error) {
	categories, err := s.CategoryRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}
	limits, err := s.BudgetRepo.EffectiveLimits(ctx, userID, year, month)
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}
	return categories, limits, nil
}

func effectiveLimit(category *domain.Category, limits map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	if limit, ok := limits[category.ID]; ok {
		return limit
	}
	return category.MonthlyLimit
}

func (s *BudgetService) summarize(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetSummary, error) {
	record, err := s.budgetMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	categories, limits, err := s.categoriesWithLimits(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	spentMap, err := s.ExpenseRepo.SpentByCategory(ctx, userID, year, month)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary := &domain.BudgetSummary{
		Year:               year,
		Month:              month,
		Salary:             record.Salary,
		OtherIncome:        record.OtherIncome,
		TotalIncome:        record.Salary.Add(record.OtherIncome).Add(record.IncomeSourcesTotal()),
		FixedTotal:         decimal.Zero,
		PlannedSavings:     decimal.Zero,
		PlannedDebtPayment: decimal.Zero,
		TotalSpent:         decimal.Zero,
		Categories:         make([]*domain.CategorySpend, 0, len(categories)),
	}

	totalLimits := decimal.Zero
	for _, category := range categories {
		limit := effectiveLimit(category, limits)
		totalLimits = totalLimits.Add(limit)
		switch category.Tag {
		case domain.CategoryTagSavings:
			summary.PlannedSavings = summary.PlannedSavings.Add(limit)
		case domain.CategoryTagDebt:
			summary.PlannedDebtPayment = summary.PlannedDebtPayment.Add(limit)
		default:
			summary.FixedTotal = summary.FixedTotal.Add(limit)
		}

		spent := spentMap[category.ID]
		summary.Categories = append(summary.Categories, &domain.CategorySpend{
			CategoryID:   category.ID,
			Name:         category.Name,
			MonthlyLimit: limit,
			Spent:        spent,
			Percent:      spendPercent(spent, limit),
			Status:       spendStatus(spent, limit),
			Tag:          category.Tag,
		})
	}

	// Spending on categories that are no longer active still counts toward the month.
	for _, spent := range spentMap {
		summary.TotalSpent = summary.TotalSpent.Add(spent)
	}

	summary.RemainingFlex = summary.TotalIncome.Sub(totalLimits)
	summary.OverBudget = summary.RemainingFlex.IsNegative()
	summary.ProjectedTotal = s.projectSpending(summary.TotalSpent, year, month)
	summary.Suggestions = budgetSuggestions(summary)

	return summary, nil
}

// projectSpending extrapolates the daily spending rate over the whole month.
// Past and future months use the full month length.
func (s *BudgetService) projectSpending(spent decimal.Decimal, year, month int) decimal.Decimal {
	days := utils.DaysInMonth(year, month)
	elapsed := days

	now := s.now()
	if now.Year() == year && int(now.Month()) == month {
		elapsed = max(1, now.Day())
	}

	return utils.RoundMoney(spent.Div(decimal.NewFromInt(int64(elapsed))).Mul(decimal.NewFromInt(int64(days))))
}

func spendPercent(spent, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(limit).Mul(hundred).Round(2)
}

func spendStatus(spent, limit decimal.Decimal) string {
	switch {
	case !limit.IsPositive():
		return domain.SpendStatusOK
	case spent.GreaterThanOrEqual(limit):
		return domain.SpendStatusOver
	case spent.GreaterThanOrEqual(limit.Mul(warningRatio)):
		return domain.SpendStatusWarning
	default:
		return domain.SpendStatusOK
	}
}

// budgetSuggestions proposes cuts on the largest limits when the plan
// exceeds income, and ways to use the surplus otherwise.
func budgetSuggestions(summary *domain.BudgetSummary) []string {
	suggestions := []string{}

	if summary.OverBudget {
		limited := make([]*domain.CategorySpend, 0, len(summary.Categories))
		for _, c := range summary.Categories {
			if c.MonthlyLimit.IsPositive() {
				limited = append(limited, c)
			}
		}
		sort.SliceStable(limited, func(i, j int) bool {
			return limited[i].MonthlyLimit.GreaterThan(limited[j].MonthlyLimit)
		})

		deficit := summary.RemainingFlex.Abs()
		for i, c := range limited {
			if i == maxCutSuggest {
				break
			}
			cut := decimal.Min(deficit, c.MonthlyLimit.Mul(maxCutRatio))
			if !cut.IsPositive() {
				continue
			}
			suggestions = append(suggestions, fmt.Sprintf("Reduce %s by $%s to close the gap.", c.Name, utils.FormatMoney(cut)))
			deficit = deficit.Sub(cut)
		}
		return suggestions
	}

	if !summary.PlannedSavings.IsPositive() && summary.TotalIncome.IsPositive() {
		suggestions = append(suggestions, "Add a Savings category at 10% of salary.")
	}
	return append(suggestions,
		"Allocate extra toward Savings.",
		"Increase Debt Payment for faster payoff.",
		"Create or grow a Flex category.",
	)
}

// CheckThresholds raises, at most once per month each, the 80% and 100%
// category alerts and the overall pace alert.
func (s *BudgetService) CheckThresholds(ctx context.Context, userID uuid.UUID, year, month int) error {
	summary, err := s.summarize(ctx, userID, year, month)
	if err != nil {
		return err
	}

	for _, c := range summary.Categories {
		if !c.MonthlyLimit.IsPositive() {
			continue
		}

		categoryID := c.CategoryID
		switch {
		case c.Spent.GreaterThanOrEqual(c.MonthlyLimit):
			err = s.raiseOnce(ctx, userID, &categoryID, year, month,
				fmt.Sprintf("cat-%s-100-%d-%d", c.CategoryID, year, month),
				domain.AlertLevelAlert,
				fmt.Sprintf("%s is over the monthly limit.", c.Name))
		case c.Spent.GreaterThanOrEqual(c.MonthlyLimit.Mul(warningRatio)):
			err = s.raiseOnce(ctx, userID, &categoryID, year, month,
				fmt.Sprintf("cat-%s-80-%d-%d", c.CategoryID, year, month),
				domain.AlertLevelWarning,
				fmt.Sprintf("%s reached 80%% of the monthly limit.", c.Name))
		}
		if err != nil {
			return err
		}
	}

	threshold := summary.TotalIncome
	if summary.PlannedSavings.IsPositive() {
		threshold = threshold.Sub(summary.PlannedSavings)
	}
	if threshold.IsPositive() && summary.ProjectedTotal.GreaterThan(threshold) {
		return s.raiseOnce(ctx, userID, nil, year, month,
			fmt.Sprintf("pace-%d-%d", year, month),
			domain.AlertLevelAlert,
			"Overall spending pace is projected to exceed the budget.")
	}
	return nil
}

func (s *BudgetService) raiseOnce(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, year, month int, code, level, message string) error {
	exists, err := s.AlertRepo.Exists(ctx, userID, code, year, month)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if exists {
		return nil
	}

	alert := &domain.Alert{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Year:       year,
		Month:      month,
		Code:       code,
		Level:      level,
		Message:    message,
		CreatedAt:  s.now(),
	}
	if err := s.AlertRepo.Create(ctx, alert); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// raiseThresholdAlerts runs after a successful write; a failure here does not
// undo the write, so it is only logged.
func (s *BudgetService) raiseThresholdAlerts(ctx context.Context, userID uuid.UUID, year, month int) {
	if err := s.CheckThresholds(ctx, userID, year, month); err != nil {
		slog.Warn("Budget threshold check failed", "user_id", userID, "year", year, "month", month, "error", err)
	}
}
