package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/segyhp/budget-planner/internal/auth"
	"github.com/segyhp/budget-planner/internal/metrics"
	"github.com/segyhp/budget-planner/pkg/response"
)

// Router bundles everything the HTTP API is built from.
type Router struct {
	Auth        *AuthHandler
	Debts       *DebtHandler
	Tasks       *TaskHandler
	Budget      *BudgetHandler
	Alerts      *AlertHandler
	Suggestions *SuggestionHandler
	Health      *HealthHandler

	JWT            *auth.JWTManager
	Admins         auth.AdminLookup
	Metrics        *metrics.Metrics
	FrontendOrigin string
}

// Build registers every route.
func (rt *Router) Build() *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware(rt.FrontendOrigin))
	router.Use(response.LoggingMiddleware)

	// Preflight requests are answered by the CORS middleware.
	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	if rt.Metrics != nil {
		router.Use(rt.Metrics.Middleware)
		router.Handle("/metrics", rt.Metrics.Handler()).Methods(http.MethodGet)
	}

	// Health check
	router.HandleFunc("/health", rt.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", rt.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", rt.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", rt.Auth.Login).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(auth.RequireAuth(rt.JWT))

	private.HandleFunc("/auth/me", rt.Auth.Me).Methods(http.MethodGet)
	private.HandleFunc("/auth/change-password", rt.Auth.ChangePassword).Methods(http.MethodPost)

	private.HandleFunc("/debts", rt.Debts.ListDebts).Methods(http.MethodGet)
	private.HandleFunc("/debts", rt.Debts.CreateDebt).Methods(http.MethodPost)
	private.HandleFunc("/debts/simulate", rt.Debts.Simulate).Methods(http.MethodPost)
	private.HandleFunc("/debts/simulate/compare", rt.Debts.Compare).Methods(http.MethodPost)
	private.HandleFunc("/debts/{debtId}", rt.Debts.UpdateDebt).Methods(http.MethodPut)
	private.HandleFunc("/debts/{debtId}", rt.Debts.DeleteDebt).Methods(http.MethodDelete)

	private.HandleFunc("/budget/summary", rt.Budget.Summary).Methods(http.MethodGet)
	private.HandleFunc("/budget/current", rt.Budget.Current).Methods(http.MethodGet)
	private.HandleFunc("/budget/salary", rt.Budget.SetSalary).Methods(http.MethodPost)
	private.HandleFunc("/budget/limits", rt.Budget.SetLimits).Methods(http.MethodPost)

	private.HandleFunc("/categories", rt.Budget.ListCategories).Methods(http.MethodGet)
	private.HandleFunc("/categories", rt.Budget.CreateCategory).Methods(http.MethodPost)
	private.HandleFunc("/categories/{categoryId}", rt.Budget.UpdateCategory).Methods(http.MethodPut)
	private.HandleFunc("/categories/{categoryId}/delete", rt.Budget.DeleteCategory).Methods(http.MethodPost)

	private.HandleFunc("/expenses", rt.Budget.ListExpenses).Methods(http.MethodGet)
	private.HandleFunc("/expenses", rt.Budget.CreateExpense).Methods(http.MethodPost)
	private.HandleFunc("/expenses/{expenseId}", rt.Budget.DeleteExpense).Methods(http.MethodDelete)

	private.HandleFunc("/tasks", rt.Tasks.ListTasks).Methods(http.MethodGet)
	private.HandleFunc("/tasks", rt.Tasks.CreateTask).Methods(http.MethodPost)
	private.HandleFunc("/tasks/{taskId}", rt.Tasks.UpdateTask).Methods(http.MethodPut)
	private.HandleFunc("/tasks/{taskId}", rt.Tasks.DeleteTask).Methods(http.MethodDelete)

	private.HandleFunc("/alerts", rt.Alerts.ListAlerts).Methods(http.MethodGet)
	private.HandleFunc("/alerts/{alertId}/read", rt.Alerts.MarkRead).Methods(http.MethodPost)

	private.HandleFunc("/suggestions", rt.Suggestions.ListSuggestions).Methods(http.MethodGet)
	private.HandleFunc("/suggestions", rt.Suggestions.CreateSuggestion).Methods(http.MethodPost)

	admin := private.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireAdmin(rt.Admins))
	admin.HandleFunc("/users", rt.Suggestions.AdminListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/suggestions", rt.Suggestions.AdminListSuggestions).Methods(http.MethodGet)

	return router
}
