package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/database"
	"github.com/MrJamesThe3rd/budget/internal/debt"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

const selectDebtColumns = `id, creditor, amount, due_date, status, notes`

func scanDebt(row interface{ Scan(dest ...any) error }) (*debt.Debt, error) {
	var d debt.Debt
	if err := row.Scan(&d.ID, &d.Creditor, &d.Amount, &d.DueDate, &d.Status, &d.Notes); err != nil {
		return nil, err
	}

	return &d, nil
}

func (s *Store) ListDebts(ctx context.Context) ([]*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts ORDER BY due_date ASC NULLS LAST, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	debts := []*debt.Debt{}

	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debts: %w", err)
	}

	return debts, nil
}

func (s *Store) GetDebt(ctx context.Context, id int64) (*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts WHERE id = $1`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("debt", id)
		}

		return nil, fmt.Errorf("getting debt: %w", err)
	}

	return d, nil
}

func (s *Store) CreateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		INSERT INTO debts (creditor, amount, due_date, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		d.Creditor, d.Amount, dateArg(d.DueDate), database.NullString(d.Status), database.NullString(d.Notes),
	).Scan(&d.ID)
	if err != nil {
		return mapWriteError("creating debt", err)
	}

	return nil
}

func (s *Store) UpdateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		UPDATE debts
		SET creditor = $1, amount = $2, due_date = $3, status = $4, notes = $5
		WHERE id = $6`

	res, err := s.db.ExecContext(ctx, query,
		d.Creditor, d.Amount, dateArg(d.DueDate), database.NullString(d.Status), database.NullString(d.Notes), d.ID,
	)
	if err != nil {
		return mapWriteError("updating debt", err)
	}

	return expectRow(res, d.ID)
}

func (s *Store) DeleteDebt(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	return expectRow(res, id)
}

func dateArg(d *normalize.Date) any {
	if d == nil {
		return nil
	}

	return *d
}

func expectRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return apperror.NotFound("debt", id)
	}

	return nil
}

func mapWriteError(op string, err error) error {
	if database.IsNumericOutOfRange(err) {
		return debt.ErrAmountOutOfRange
	}

	return fmt.Errorf("%s: %w", op, err)
}
