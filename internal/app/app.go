// Package app wires stores, services and HTTP handlers around one database.
package app

import (
	"net/http"

	"github.com/MrJamesThe3rd/budget/internal/database"
	"github.com/MrJamesThe3rd/budget/internal/debt"
	debtStore "github.com/MrJamesThe3rd/budget/internal/debt/store"
	"github.com/MrJamesThe3rd/budget/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/budget/internal/expense/store"
	budgetHttp "github.com/MrJamesThe3rd/budget/internal/http"
	debtHandler "github.com/MrJamesThe3rd/budget/internal/http/debt"
	expenseHandler "github.com/MrJamesThe3rd/budget/internal/http/expense"
	incomeHandler "github.com/MrJamesThe3rd/budget/internal/http/income"
	sourceHandler "github.com/MrJamesThe3rd/budget/internal/http/source"
	"github.com/MrJamesThe3rd/budget/internal/income"
	incomeStore "github.com/MrJamesThe3rd/budget/internal/income/store"
	"github.com/MrJamesThe3rd/budget/internal/source"
	sourceStore "github.com/MrJamesThe3rd/budget/internal/source/store"
)

type Services struct {
	Sources  *source.Service
	Expenses *expense.Service
	Incomes  *income.Service
	Debts    *debt.Service
}

func NewServices(db *database.DB) *Services {
	return &Services{
		Sources:  source.NewService(sourceStore.New(db)),
		Expenses: expense.NewService(expenseStore.New(db)),
		Incomes:  income.NewService(incomeStore.New(db)),
		Debts:    debt.NewService(debtStore.New(db)),
	}
}

func (s *Services) Handler(opts budgetHttp.Options) http.Handler {
	return budgetHttp.New(
		opts,
		sourceHandler.NewHandler(s.Sources),
		expenseHandler.NewHandler(s.Expenses),
		incomeHandler.NewHandler(s.Incomes),
		debtHandler.NewHandler(s.Debts),
	)
}
