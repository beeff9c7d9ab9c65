package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/config"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/metrics"
	"github.com/segyhp/budget-planner/internal/repository"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/payoff"

	"github.com/shopspring/decimal"
)

type DebtService struct {
	DebtRepo repository.DebtRepository
	cache    repository.PlanCache
	metrics  *metrics.Metrics
	config   *config.Config
}

// NewDebtService wires the debt service. cache and m may be nil.
func NewDebtService(
	debtRepo repository.DebtRepository,
	cache repository.PlanCache,
	m *metrics.Metrics,
	config *config.Config,
) *DebtService {
	return &DebtService{
		DebtRepo: debtRepo,
		cache:    cache,
		metrics:  m,
		config:   config,
	}
}

// List returns the caller's active debts
func (s *DebtService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Debt, error) {
	debts, err := s.DebtRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if debts == nil {
		debts = []*domain.Debt{}
	}
	return debts, nil
}

// Create stores a new debt for the caller
func (s *DebtService) Create(ctx context.Context, userID uuid.UUID, request *domain.CreateDebtRequest) (*domain.Debt, error) {
	if err := checkAmounts(request.TotalBalance, request.MinimumMonthlyPayment, request.ExtraMonthlyPayment); err != nil {
		return nil, err
	}
	if request.APR.Valid && request.APR.Decimal.IsNegative() {
		return nil, customError.WrapInvalidAmount(fmt.Errorf("apr %s", request.APR.Decimal))
	}

	now := time.Now()
	debt := &domain.Debt{
		ID:                    uuid.New(),
		UserID:                userID,
		Name:                  request.Name,
		TotalBalance:          request.TotalBalance,
		APR:                   request.APR,
		MinimumMonthlyPayment: request.MinimumMonthlyPayment,
		ExtraMonthlyPayment:   request.ExtraMonthlyPayment,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.DebtRepo.Create(ctx, debt); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	s.invalidatePlans(ctx, userID)

	return debt, nil
}

// Update applies a partial update to one of the caller's debts
func (s *DebtService) Update(ctx context.Context, userID, debtID uuid.UUID, request *domain.UpdateDebtRequest) (*domain.Debt, error) {
	debt, err := s.DebtRepo.GetByID(ctx, userID, debtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDebtNotFound(debtID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	request.Apply(debt)
	if err := checkAmounts(debt.TotalBalance, debt.MinimumMonthlyPayment, debt.ExtraMonthlyPayment); err != nil {
		return nil, err
	}
	if debt.APR.Valid && debt.APR.Decimal.IsNegative() {
		return nil, customError.WrapInvalidAmount(fmt.Errorf("apr %s", debt.APR.Decimal))
	}

	if err := s.DebtRepo.Update(ctx, debt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDebtNotFound(debtID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	s.invalidatePlans(ctx, userID)

	return debt, nil
}

// Delete soft deletes one of the caller's debts
func (s *DebtService) Delete(ctx context.Context, userID, debtID uuid.UUID) error {
	if err := s.DebtRepo.Deactivate(ctx, userID, debtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapDebtNotFound(debtID.String())
		}
		return customError.WrapDatabaseError(err)
	}
	s.invalidatePlans(ctx, userID)
	return nil
}

// Simulate runs the requested strategy over the caller's active debts.
// Results are served from the plan cache when possible.
func (s *DebtService) Simulate(ctx context.Context, userID uuid.UUID, request *domain.SimulationRequest) (*payoff.Result, error) {
	strategy, err := payoff.ParseStrategy(request.Strategy)
	if err != nil {
		return nil, customError.WrapInvalidStrategy(err)
	}
	if request.ExtraMonthlyPayment.IsNegative() {
		return nil, customError.WrapInvalidAmount(payoff.ErrNegativeAmount)
	}

	opts := payoff.Options{
		Strategy:            strategy,
		ExtraMonthlyPayment: request.ExtraMonthlyPayment,
		MaxMonths:           s.config.Business.MaxSimulationMonths,
		RollFreedPayments:   request.RollFreedPayments,
	}
	key := planKey(opts)

	version, cacheable := s.planVersion(ctx, userID)
	if cacheable {
		if cached := s.cachedPlan(ctx, userID, version, key); cached != nil {
			return cached, nil
		}
	}

	debts, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := payoff.Simulate(debts, opts)
	if err != nil {
		return nil, mapPayoffError(err)
	}
	s.metrics.ObserveSimulation(strategy.String(), result.Converged)

	slog.Debug("Payoff plan simulated",
		"user_id", userID,
		"strategy", strategy,
		"debts", len(debts),
		"total_months", result.TotalMonths,
		"converged", result.Converged,
	)

	if cacheable {
		if err := s.cache.Set(ctx, userID, version, key, result); err != nil {
			slog.Warn("Failed to cache payoff plan", "user_id", userID, "error", customError.WrapCacheError(err))
		}
	}

	return result, nil
}

// Compare runs both strategies over the same snapshot of the caller's debts
func (s *DebtService) Compare(ctx context.Context, userID uuid.UUID, request *domain.CompareRequest) (*payoff.Comparison, error) {
	if request.ExtraMonthlyPayment.IsNegative() {
		return nil, customError.WrapInvalidAmount(payoff.ErrNegativeAmount)
	}

	debts, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	comparison, err := payoff.Compare(debts, payoff.Options{
		ExtraMonthlyPayment: request.ExtraMonthlyPayment,
		MaxMonths:           s.config.Business.MaxSimulationMonths,
		RollFreedPayments:   request.RollFreedPayments,
	})
	if err != nil {
		return nil, mapPayoffError(err)
	}
	s.metrics.ObserveSimulation(payoff.Avalanche.String(), comparison.Avalanche.Converged)
	s.metrics.ObserveSimulation(payoff.Snowball.String(), comparison.Snowball.Converged)

	return comparison, nil
}

// snapshot loads the active debts that still carry a balance, in creation order.
func (s *DebtService) snapshot(ctx context.Context, userID uuid.UUID) ([]payoff.Debt, error) {
	debts, err := s.DebtRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	inputs := make([]payoff.Debt, 0, len(debts))
	for _, d := range debts {
		if d.IsPaidOff() {
			continue
		}
		inputs = append(inputs, d.ToPayoff())
	}
	return inputs, nil
}

// planVersion reads the debts version once per request. It must be read
// before the snapshot so a concurrent invalidation retires this request's plan.
func (s *DebtService) planVersion(ctx context.Context, userID uuid.UUID) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.Version(ctx, userID)
	if err != nil {
		s.metrics.ObservePlanCache("error")
		slog.Warn("Plan cache version lookup failed", "user_id", userID, "error", customError.WrapCacheError(err))
		return 0, false
	}
	return version, true
}

func (s *DebtService) cachedPlan(ctx context.Context, userID uuid.UUID, version int64, key string) *payoff.Result {
	result, err := s.cache.Get(ctx, userID, version, key)
	switch {
	case err != nil:
		s.metrics.ObservePlanCache("error")
		slog.Warn("Plan cache lookup failed", "user_id", userID, "error", customError.WrapCacheError(err))
		return nil
	case result == nil:
		s.metrics.ObservePlanCache("miss")
		return nil
	default:
		s.metrics.ObservePlanCache("hit")
		return result
	}
}

func (s *DebtService) invalidatePlans(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate payoff plans", "user_id", userID, "error", customError.WrapCacheError(err))
	}
}

func planKey(opts payoff.Options) string {
	return fmt.Sprintf("%s:%s:%t:%d", opts.Strategy, opts.ExtraMonthlyPayment.String(), opts.RollFreedPayments, opts.MaxMonths)
}

func checkAmounts(amounts ...decimal.Decimal) error {
	for _, amount := range amounts {
		if amount.IsNegative() {
			return customError.WrapInvalidAmount(fmt.Errorf("%w: %s", payoff.ErrNegativeAmount, amount))
		}
	}
	return nil
}

func mapPayoffError(err error) error {
	switch {
	case errors.Is(err, payoff.ErrInvalidStrategy):
		return customError.WrapInvalidStrategy(err)
	case errors.Is(err, payoff.ErrNegativeAmount):
		return customError.WrapInvalidAmount(err)
	default:
		return err
	}
}
