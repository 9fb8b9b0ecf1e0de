package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/database"
	"github.com/MrJamesThe3rd/budget/internal/income"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

const selectIncomeColumns = `id, source, amount, received_date, category, notes`

func scanIncome(row interface{ Scan(dest ...any) error }) (*income.Income, error) {
	var i income.Income
	if err := row.Scan(&i.ID, &i.Source, &i.Amount, &i.ReceivedDate, &i.Category, &i.Notes); err != nil {
		return nil, err
	}

	return &i, nil
}

func (s *Store) ListIncomes(ctx context.Context) ([]*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + ` FROM incomes ORDER BY received_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}
	defer rows.Close()

	incomes := []*income.Income{}

	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}

		incomes = append(incomes, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating incomes: %w", err)
	}

	return incomes, nil
}

func (s *Store) GetIncome(ctx context.Context, id int64) (*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + ` FROM incomes WHERE id = $1`

	i, err := scanIncome(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("income", id)
		}

		return nil, fmt.Errorf("getting income: %w", err)
	}

	return i, nil
}

func (s *Store) CreateIncome(ctx context.Context, i *income.Income) error {
	query := `
		INSERT INTO incomes (source, amount, received_date, category, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		i.Source, i.Amount, i.ReceivedDate, database.NullString(i.Category), database.NullString(i.Notes),
	).Scan(&i.ID)
	if err != nil {
		return mapWriteError("creating income", err)
	}

	return nil
}

func (s *Store) UpdateIncome(ctx context.Context, i *income.Income) error {
	query := `
		UPDATE incomes
		SET source = $1, amount = $2, received_date = $3, category = $4, notes = $5
		WHERE id = $6`

	res, err := s.db.ExecContext(ctx, query,
		i.Source, i.Amount, i.ReceivedDate, database.NullString(i.Category), database.NullString(i.Notes), i.ID,
	)
	if err != nil {
		return mapWriteError("updating income", err)
	}

	return expectRow(res, i.ID)
}

func (s *Store) DeleteIncome(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting income: %w", err)
	}

	return expectRow(res, id)
}

func expectRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return apperror.NotFound("income", id)
	}

	return nil
}

func mapWriteError(op string, err error) error {
	switch {
	case database.IsCheckViolation(err):
		return income.ErrNegativeAmount
	case database.IsNumericOutOfRange(err):
		return income.ErrAmountOutOfRange
	}

	return fmt.Errorf("%s: %w", op, err)
}
