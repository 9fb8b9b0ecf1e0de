package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=source
type Repository interface {
	ListSources(ctx context.Context) ([]*Source, error)
	GetSource(ctx context.Context, id int64) (*Source, error)
	// FindSourceByName returns nil without error when no source has the name.
	FindSourceByName(ctx context.Context, name string) (*Source, error)
	CreateSource(ctx context.Context, s *Source) error
	UpdateSource(ctx context.Context, s *Source) error
	DeleteSource(ctx context.Context, id int64) error
	CountExpenses(ctx context.Context, id int64) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name string
	Type string
}

// UpdateParams holds the fields to change; nil means leave untouched.
type UpdateParams struct {
	Name *string
	Type *string
}

func (s *Service) List(ctx context.Context) ([]*Source, error) {
	return s.repo.ListSources(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Source, error) {
	return s.repo.GetSource(ctx, id)
}

// GetByName returns the source with the exact name, or a validation error
// naming the field when there is none.
func (s *Service) GetByName(ctx context.Context, name string) (*Source, error) {
	src, err := s.repo.FindSourceByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if src == nil {
		return nil, apperror.Validation("source", fmt.Sprintf("unknown source %q", name))
	}

	return src, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Source, error) {
	if err := requireText("name", params.Name); err != nil {
		return nil, err
	}

	if err := requireText("type", params.Type); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindSourceByName(ctx, params.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrDuplicateName
	}

	src := &Source{Name: params.Name, Type: params.Type}
	if err := s.repo.CreateSource(ctx, src); err != nil {
		return nil, err
	}

	return src, nil
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Source, error) {
	src, err := s.repo.GetSource(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if err := requireText("name", *params.Name); err != nil {
			return nil, err
		}

		if *params.Name != src.Name {
			existing, err := s.repo.FindSourceByName(ctx, *params.Name)
			if err != nil {
				return nil, err
			}

			if existing != nil && existing.ID != src.ID {
				return nil, ErrDuplicateName
			}

			src.Name = *params.Name
		}
	}

	if params.Type != nil {
		if err := requireText("type", *params.Type); err != nil {
			return nil, err
		}

		src.Type = *params.Type
	}

	if err := s.repo.UpdateSource(ctx, src); err != nil {
		return nil, err
	}

	return src, nil
}

// Delete removes a source. Sources still referenced by expenses are kept
// and a conflict is returned.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetSource(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountExpenses(ctx, id)
	if err != nil {
		return err
	}

	if n > 0 {
		return apperror.Conflict(fmt.Sprintf("source is used by %d expense(s)", n))
	}

	return s.repo.DeleteSource(ctx, id)
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperror.Validation(field, "is required")
	}

	return nil
}
