// Package importer bulk-loads expenses from CSV exports.
package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/budget/internal/encoding"
	"github.com/MrJamesThe3rd/budget/internal/expense"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

type SourceFinder interface {
	GetByName(ctx context.Context, name string) (*source.Source, error)
}

type ExpenseCreator interface {
	CreateBatch(ctx context.Context, params []expense.CreateParams) ([]*expense.Expense, error)
}

type Service struct {
	sources  SourceFinder
	expenses ExpenseCreator
}

func NewService(sources SourceFinder, expenses ExpenseCreator) *Service {
	return &Service{sources: sources, expenses: expenses}
}

type Options struct {
	// Source is the exact name of the source every row is charged to.
	Source string
	// Charset overrides detection; empty means detect.
	Charset string
}

// Import parses every row before writing and inserts all of them in one
// transaction, so a bad row leaves the database untouched.
func (s *Service) Import(ctx context.Context, r io.Reader, opts Options) ([]*expense.Expense, error) {
	src, err := s.sources.GetByName(ctx, opts.Source)
	if err != nil {
		return nil, err
	}

	utf8r, err := encoding.NewReader(r, opts.Charset)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	rows, err := Parse(utf8r)
	if err != nil {
		return nil, err
	}

	params := make([]expense.CreateParams, len(rows))
	for i, row := range rows {
		row.Params.SourceID = src.ID
		params[i] = row.Params
	}

	created, err := s.expenses.CreateBatch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	return created, nil
}
