package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	ListExpenses(ctx context.Context) ([]*Expense, error)
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	CreateExpense(ctx context.Context, e *Expense) error
	// CreateExpenses inserts all expenses in one transaction.
	CreateExpenses(ctx context.Context, es []*Expense) error
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	SourceExists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Description string
	Amount      decimal.Decimal
	Date        normalize.Date
	Category    *string
	Notes       *string
	SourceID    int64
	Splits      []normalize.Split
	Installment *normalize.Installment
}

// UpdateParams carries only the fields present in an update request.
// Splits and Installment set to a nil value clear the sub-structure.
type UpdateParams struct {
	Description *string
	Amount      *decimal.Decimal
	Date        *normalize.Date
	Category    normalize.Optional[*string]
	Notes       normalize.Optional[*string]
	SourceID    *int64
	Splits      normalize.Optional[[]normalize.Split]
	Installment normalize.Optional[*normalize.Installment]
}

func (s *Service) List(ctx context.Context) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	e, err := s.prepare(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// CreateBatch validates every entry before writing any, then inserts them
// atomically.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	known := make(map[int64]bool)
	es := make([]*Expense, 0, len(params))

	for i, p := range params {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		if _, ok := known[p.SourceID]; !ok {
			exists, err := s.repo.SourceExists(ctx, p.SourceID)
			if err != nil {
				return nil, err
			}

			known[p.SourceID] = exists
		}

		if !known[p.SourceID] {
			return nil, fmt.Errorf("entry %d: %w", i+1, ErrUnknownSource)
		}

		es = append(es, newExpense(p))
	}

	if err := s.repo.CreateExpenses(ctx, es); err != nil {
		return nil, err
	}

	return es, nil
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		if err := requireDescription(*params.Description); err != nil {
			return nil, err
		}

		e.Description = *params.Description
	}

	if params.Amount != nil {
		e.Amount = *params.Amount
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if params.Category.Set {
		e.Category = params.Category.Value
	}

	if params.Notes.Set {
		e.Notes = params.Notes.Value
	}

	if params.SourceID != nil {
		if err := s.requireSource(ctx, *params.SourceID); err != nil {
			return nil, err
		}

		e.SourceID = *params.SourceID
		e.Source = nil
	}

	if params.Splits.Set {
		e.Splits = params.Splits.Value
	}

	if params.Installment.Set {
		if inst := params.Installment.Value; inst != nil {
			if err := inst.Validate(); err != nil {
				return nil, apperror.Validation("installment", err.Error())
			}
		}

		e.Installment = params.Installment.Value
	}

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteExpense(ctx, id)
}

func (s *Service) prepare(ctx context.Context, params CreateParams) (*Expense, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	if err := s.requireSource(ctx, params.SourceID); err != nil {
		return nil, err
	}

	return newExpense(params), nil
}

func (s *Service) requireSource(ctx context.Context, id int64) error {
	exists, err := s.repo.SourceExists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return ErrUnknownSource
	}

	return nil
}

func validate(p CreateParams) error {
	if err := requireDescription(p.Description); err != nil {
		return err
	}

	if p.Date.IsZero() {
		return apperror.Validation("date", "is required")
	}

	if p.Installment != nil {
		if err := p.Installment.Validate(); err != nil {
			return apperror.Validation("installment", err.Error())
		}
	}

	return nil
}

func requireDescription(v string) error {
	if strings.TrimSpace(v) == "" {
		return apperror.Validation("description", "is required")
	}

	return nil
}

func newExpense(p CreateParams) *Expense {
	return &Expense{
		Description: p.Description,
		Amount:      p.Amount,
		Date:        p.Date,
		Category:    p.Category,
		Notes:       p.Notes,
		SourceID:    p.SourceID,
		Splits:      p.Splits,
		Installment: p.Installment,
	}
}
