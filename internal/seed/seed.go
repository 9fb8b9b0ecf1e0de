// Package seed loads the demo records written by init-db.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/budget/internal/app"
	"github.com/MrJamesThe3rd/budget/internal/debt"
	"github.com/MrJamesThe3rd/budget/internal/expense"
	"github.com/MrJamesThe3rd/budget/internal/income"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

//go:embed demo.yaml
var demo []byte

type Fixture struct {
	Sources  []sourceRow  `yaml:"sources"`
	Incomes  []incomeRow  `yaml:"incomes"`
	Expenses []expenseRow `yaml:"expenses"`
	Debts    []debtRow    `yaml:"debts"`
}

// relDate is a date relative to the day the fixture is applied.
type relDate struct {
	Days       int  `yaml:"days"`
	MonthStart bool `yaml:"month_start"`
}

func (r relDate) from(today normalize.Date) normalize.Date {
	if r.MonthStart {
		t := today.Time()
		return normalize.NewDate(t.Year(), t.Month(), 1)
	}

	return today.AddDays(r.Days)
}

type sourceRow struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type incomeRow struct {
	Source   string  `yaml:"source"`
	Amount   string  `yaml:"amount"`
	Received relDate `yaml:"received"`
	Category *string `yaml:"category"`
	Notes    *string `yaml:"notes"`
}

type splitRow struct {
	Name   string `yaml:"name"`
	Amount string `yaml:"amount"`
}

type installmentRow struct {
	Count  int     `yaml:"count"`
	Number int     `yaml:"number"`
	Amount *string `yaml:"amount"`
}

type expenseRow struct {
	Description string          `yaml:"description"`
	Amount      string          `yaml:"amount"`
	Date        relDate         `yaml:"date"`
	Category    *string         `yaml:"category"`
	Source      string          `yaml:"source"`
	Notes       *string         `yaml:"notes"`
	Splits      []splitRow      `yaml:"splits"`
	Installment *installmentRow `yaml:"installment"`
}

type debtRow struct {
	Creditor string   `yaml:"creditor"`
	Amount   string   `yaml:"amount"`
	Due      *relDate `yaml:"due"`
	Status   *string  `yaml:"status"`
	Notes    *string  `yaml:"notes"`
}

// Demo returns the embedded demo fixture.
func Demo() (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(demo, &f); err != nil {
		return nil, fmt.Errorf("parsing demo fixture: %w", err)
	}

	return &f, nil
}

type Summary struct {
	Sources, Incomes, Expenses, Debts int
}

// Apply creates every record of the fixture through the services, so the
// demo data passes the same validation as API input. Expense sources are
// referenced by name and must be part of the fixture or already exist.
func (f *Fixture) Apply(ctx context.Context, svc *app.Services, today normalize.Date) (Summary, error) {
	var sum Summary

	for _, row := range f.Sources {
		if _, err := svc.Sources.Create(ctx, source.CreateParams{Name: row.Name, Type: row.Type}); err != nil {
			return sum, fmt.Errorf("source %q: %w", row.Name, err)
		}

		sum.Sources++
	}

	for _, row := range f.Incomes {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return sum, fmt.Errorf("income %q: amount: %w", row.Source, err)
		}

		_, err = svc.Incomes.Create(ctx, income.CreateParams{
			Source:       row.Source,
			Amount:       amount,
			ReceivedDate: row.Received.from(today),
			Category:     row.Category,
			Notes:        row.Notes,
		})
		if err != nil {
			return sum, fmt.Errorf("income %q: %w", row.Source, err)
		}

		sum.Incomes++
	}

	params := make([]expense.CreateParams, 0, len(f.Expenses))
	for _, row := range f.Expenses {
		p, err := row.params(ctx, svc.Sources, today)
		if err != nil {
			return sum, fmt.Errorf("expense %q: %w", row.Description, err)
		}

		params = append(params, p)
	}

	created, err := svc.Expenses.CreateBatch(ctx, params)
	if err != nil {
		return sum, fmt.Errorf("expenses: %w", err)
	}

	sum.Expenses = len(created)

	for _, row := range f.Debts {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return sum, fmt.Errorf("debt %q: amount: %w", row.Creditor, err)
		}

		var due *normalize.Date
		if row.Due != nil {
			due = new(row.Due.from(today))
		}

		_, err = svc.Debts.Create(ctx, debt.CreateParams{
			Creditor: row.Creditor,
			Amount:   amount,
			DueDate:  due,
			Status:   row.Status,
			Notes:    row.Notes,
		})
		if err != nil {
			return sum, fmt.Errorf("debt %q: %w", row.Creditor, err)
		}

		sum.Debts++
	}

	return sum, nil
}

func (row expenseRow) params(ctx context.Context, sources *source.Service, today normalize.Date) (expense.CreateParams, error) {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return expense.CreateParams{}, fmt.Errorf("amount: %w", err)
	}

	src, err := sources.GetByName(ctx, row.Source)
	if err != nil {
		return expense.CreateParams{}, err
	}

	p := expense.CreateParams{
		Description: row.Description,
		Amount:      amount,
		Date:        row.Date.from(today),
		Category:    row.Category,
		Notes:       row.Notes,
		SourceID:    src.ID,
	}

	for _, sp := range row.Splits {
		a, err := decimal.NewFromString(sp.Amount)
		if err != nil {
			return expense.CreateParams{}, fmt.Errorf("split %q: %w", sp.Name, err)
		}

		p.Splits = append(p.Splits, normalize.Split{Name: sp.Name, Amount: a})
	}

	if inst := row.Installment; inst != nil {
		p.Installment = &normalize.Installment{Count: inst.Count, Number: inst.Number}

		if inst.Amount != nil {
			a, err := decimal.NewFromString(*inst.Amount)
			if err != nil {
				return expense.CreateParams{}, fmt.Errorf("installment amount: %w", err)
			}

			p.Installment.Amount = &a
		}
	}

	return p, nil
}
