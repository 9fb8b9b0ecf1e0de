package income

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=income
type Repository interface {
	ListIncomes(ctx context.Context) ([]*Income, error)
	GetIncome(ctx context.Context, id int64) (*Income, error)
	CreateIncome(ctx context.Context, i *Income) error
	UpdateIncome(ctx context.Context, i *Income) error
	DeleteIncome(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Source       string
	Amount       decimal.Decimal
	ReceivedDate normalize.Date
	Category     *string
	Notes        *string
}

type UpdateParams struct {
	Source       *string
	Amount       *decimal.Decimal
	ReceivedDate *normalize.Date
	Category     normalize.Optional[*string]
	Notes        normalize.Optional[*string]
}

func (s *Service) List(ctx context.Context) ([]*Income, error) {
	return s.repo.ListIncomes(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Income, error) {
	return s.repo.GetIncome(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Income, error) {
	if err := requireSource(params.Source); err != nil {
		return nil, err
	}

	if params.ReceivedDate.IsZero() {
		return nil, apperror.Validation("received_date", "is required")
	}

	i := &Income{
		Source:       params.Source,
		Amount:       params.Amount,
		ReceivedDate: params.ReceivedDate,
		Category:     params.Category,
		Notes:        params.Notes,
	}

	if err := s.repo.CreateIncome(ctx, i); err != nil {
		return nil, err
	}

	return i, nil
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Income, error) {
	i, err := s.repo.GetIncome(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Source != nil {
		if err := requireSource(*params.Source); err != nil {
			return nil, err
		}

		i.Source = *params.Source
	}

	if params.Amount != nil {
		i.Amount = *params.Amount
	}

	if params.ReceivedDate != nil {
		i.ReceivedDate = *params.ReceivedDate
	}

	if params.Category.Set {
		i.Category = params.Category.Value
	}

	if params.Notes.Set {
		i.Notes = params.Notes.Value
	}

	if err := s.repo.UpdateIncome(ctx, i); err != nil {
		return nil, err
	}

	return i, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteIncome(ctx, id)
}

func requireSource(v string) error {
	if strings.TrimSpace(v) == "" {
		return apperror.Validation("source", "is required")
	}

	return nil
}
