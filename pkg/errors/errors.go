package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrDebtNotFound       = errors.New("debt not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAlertNotFound      = errors.New("alert not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrSystemCategory     = errors.New("system category cannot be deleted")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidStrategy    = errors.New("invalid payoff strategy")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidTaskField   = errors.New("invalid task field")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrForbidden          = errors.New("admin only")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeDebtNotFound       = "DEBT_NOT_FOUND"
	ErrCodeTaskNotFound       = "TASK_NOT_FOUND"
	ErrCodeAlertNotFound      = "ALERT_NOT_FOUND"
	ErrCodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	ErrCodeExpenseNotFound    = "EXPENSE_NOT_FOUND"
	ErrCodeSystemCategory     = "SYSTEM_CATEGORY"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUsernameTaken      = "USERNAME_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidStrategy    = "INVALID_STRATEGY"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeInvalidTaskField   = "INVALID_TASK_FIELD"
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
)

// HTTPStatus maps a business error code to the response status.
func HTTPStatus(code string) int {
	switch code {
	case ErrCodeDebtNotFound, ErrCodeTaskNotFound, ErrCodeAlertNotFound, ErrCodeUserNotFound,
		ErrCodeCategoryNotFound, ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidStrategy, ErrCodeInvalidAmount, ErrCodeInvalidTaskField, ErrCodeValidation,
		ErrCodeSystemCategory:
		return http.StatusBadRequest
	case ErrCodeUnauthorized, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeUsernameTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// As extracts a BusinessError from err's chain.
func As(err error) (*BusinessError, bool) {
	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr, true
	}
	return nil, false
}

// Wrap common errors with business context
func WrapDebtNotFound(debtID string) *BusinessError {
	return NewBusinessError(
		ErrCodeDebtNotFound,
		fmt.Sprintf("Debt with ID %s not found", debtID),
		ErrDebtNotFound,
	)
}

func WrapTaskNotFound(taskID string) *BusinessError {
	return NewBusinessError(
		ErrCodeTaskNotFound,
		fmt.Sprintf("Task with ID %s not found", taskID),
		ErrTaskNotFound,
	)
}

func WrapAlertNotFound(alertID string) *BusinessError {
	return NewBusinessError(
		ErrCodeAlertNotFound,
		fmt.Sprintf("Alert with ID %s not found", alertID),
		ErrAlertNotFound,
	)
}

func WrapCategoryNotFound(categoryID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCategoryNotFound,
		fmt.Sprintf("Category with ID %s not found", categoryID),
		ErrCategoryNotFound,
	)
}

func WrapExpenseNotFound(expenseID string) *BusinessError {
	return NewBusinessError(
		ErrCodeExpenseNotFound,
		fmt.Sprintf("Expense with ID %s not found", expenseID),
		ErrExpenseNotFound,
	)
}

func WrapSystemCategory(name string) *BusinessError {
	return NewBusinessError(
		ErrCodeSystemCategory,
		fmt.Sprintf("System category %s cannot be deleted", name),
		ErrSystemCategory,
	)
}

func WrapUserNotFound(username string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserNotFound,
		fmt.Sprintf("User %s not found", username),
		ErrUserNotFound,
	)
}

func WrapUsernameTaken(username string) *BusinessError {
	return NewBusinessError(
		ErrCodeUsernameTaken,
		fmt.Sprintf("Username %s already exists", username),
		ErrUsernameTaken,
	)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCredentials,
		"Invalid credentials",
		ErrInvalidCredentials,
	)
}

func WrapInvalidStrategy(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidStrategy,
		"Strategy must be avalanche or snowball",
		errors.Join(ErrInvalidStrategy, err),
	)
}

func WrapInvalidAmount(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		"Amounts must not be negative",
		errors.Join(ErrInvalidAmount, err),
	)
}

func WrapInvalidTaskField(field, value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTaskField,
		fmt.Sprintf("Invalid %s: %s", field, value),
		ErrInvalidTaskField,
	)
}

func WrapUnauthorized(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeUnauthorized,
		"Not authenticated",
		errors.Join(ErrUnauthorized, err),
	)
}

func WrapForbidden() *BusinessError {
	return NewBusinessError(
		ErrCodeForbidden,
		"Admin only",
		ErrForbidden,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

func WrapValidation(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("Validation failed: %v", err),
		err,
	)
}
