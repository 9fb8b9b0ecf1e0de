package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/budget/internal/http/debt"
	"github.com/MrJamesThe3rd/budget/internal/http/expense"
	"github.com/MrJamesThe3rd/budget/internal/http/income"
	"github.com/MrJamesThe3rd/budget/internal/http/respond"
	"github.com/MrJamesThe3rd/budget/internal/http/source"
	"github.com/MrJamesThe3rd/budget/internal/metrics"
)

// maxBodyBytes caps request bodies; the largest payload is one expense.
const maxBodyBytes = 1 << 20

type Options struct {
	Logger         *slog.Logger
	Metrics        *metrics.HTTP
	AllowedOrigins []string
}

func New(
	opts Options,
	sourcesV1 *source.Handler,
	expensesV1 *expense.Handler,
	incomesV1 *income.Handler,
	debtsV1 *debt.Handler,
) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(accessLog(logger, opts.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestSize(maxBodyBytes))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	router.Get("/", directory)
	router.Get("/health", health)

	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	mount := func(path string, routes func(chi.Router)) {
		router.Route(path, func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			routes(r)
		})
	}

	mount("/sources", sourcesV1.Routes)
	mount("/expenses", expensesV1.Routes)
	mount("/incomes", incomesV1.Routes)
	mount("/debts", debtsV1.Routes)

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	return router
}

func health(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type directoryResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

func directory(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, directoryResponse{
		Message: "Welcome to the personal budget API",
		Endpoints: map[string]string{
			"GET /health":           "Liveness check",
			"GET /metrics":          "Prometheus metrics",
			"GET /sources":          "List the sources expenses are paid from",
			"POST /sources":         "Create a source",
			"GET /sources/{id}":     "Get a source",
			"PUT /sources/{id}":     "Update a source",
			"DELETE /sources/{id}":  "Delete a source that no expense uses",
			"GET /expenses":         "List expenses, newest first",
			"POST /expenses":        "Create an expense, optionally split or in installments",
			"GET /expenses/{id}":    "Get an expense",
			"PUT /expenses/{id}":    "Update an expense",
			"DELETE /expenses/{id}": "Delete an expense",
			"GET /incomes":          "List incomes, newest first",
			"POST /incomes":         "Create an income",
			"GET /incomes/{id}":     "Get an income",
			"PUT /incomes/{id}":     "Update an income",
			"DELETE /incomes/{id}":  "Delete an income",
			"GET /debts":            "List debts by due date",
			"POST /debts":           "Create a debt",
			"GET /debts/{id}":       "Get a debt",
			"PUT /debts/{id}":       "Update a debt",
			"DELETE /debts/{id}":    "Delete a debt",
		},
	})
}
