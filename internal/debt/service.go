package debt

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=debt
type Repository interface {
	ListDebts(ctx context.Context) ([]*Debt, error)
	GetDebt(ctx context.Context, id int64) (*Debt, error)
	CreateDebt(ctx context.Context, d *Debt) error
	UpdateDebt(ctx context.Context, d *Debt) error
	DeleteDebt(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Creditor string
	Amount   decimal.Decimal
	DueDate  *normalize.Date
	Status   *string
	Notes    *string
}

// UpdateParams carries only the fields present in an update request.
// A present nil DueDate clears the due date.
type UpdateParams struct {
	Creditor *string
	Amount   *decimal.Decimal
	DueDate  normalize.Optional[*normalize.Date]
	Status   normalize.Optional[*string]
	Notes    normalize.Optional[*string]
}

func (s *Service) List(ctx context.Context) ([]*Debt, error) {
	return s.repo.ListDebts(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Debt, error) {
	return s.repo.GetDebt(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Debt, error) {
	if err := requireCreditor(params.Creditor); err != nil {
		return nil, err
	}

	d := &Debt{
		Creditor: params.Creditor,
		Amount:   params.Amount,
		DueDate:  params.DueDate,
		Status:   params.Status,
		Notes:    params.Notes,
	}

	if err := s.repo.CreateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Debt, error) {
	d, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Creditor != nil {
		if err := requireCreditor(*params.Creditor); err != nil {
			return nil, err
		}

		d.Creditor = *params.Creditor
	}

	if params.Amount != nil {
		d.Amount = *params.Amount
	}

	if params.DueDate.Set {
		d.DueDate = params.DueDate.Value
	}

	if params.Status.Set {
		d.Status = params.Status.Value
	}

	if params.Notes.Set {
		d.Notes = params.Notes.Value
	}

	if err := s.repo.UpdateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteDebt(ctx, id)
}

func requireCreditor(v string) error {
	if strings.TrimSpace(v) == "" {
		return apperror.Validation("creditor", "is required")
	}

	return nil
}
