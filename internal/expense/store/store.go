package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/database"
	"github.com/MrJamesThe3rd/budget/internal/expense"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

const selectExpense = `
	SELECT e.id, e.description, e.amount, e.date, e.category, e.notes, e.source_id,
	       s.id, s.name, s.type,
	       e.installment_count, e.installment_number, e.installment_amount
	FROM expenses e
	LEFT JOIN sources s ON s.id = e.source_id`

func scanExpense(row interface{ Scan(dest ...any) error }) (*expense.Expense, error) {
	var (
		e                 expense.Expense
		srcID             sql.NullInt64
		srcName, srcType  sql.NullString
		instCount, instNo sql.NullInt64
		instAmount        decimal.NullDecimal
	)

	err := row.Scan(
		&e.ID, &e.Description, &e.Amount, &e.Date, &e.Category, &e.Notes, &e.SourceID,
		&srcID, &srcName, &srcType,
		&instCount, &instNo, &instAmount,
	)
	if err != nil {
		return nil, err
	}

	if srcID.Valid {
		e.Source = &source.Source{ID: srcID.Int64, Name: srcName.String, Type: srcType.String}
	}

	if instCount.Valid && instNo.Valid {
		e.Installment = &normalize.Installment{Count: int(instCount.Int64), Number: int(instNo.Int64)}
		if instAmount.Valid {
			e.Installment.Amount = &instAmount.Decimal
		}
	}

	return &e, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]*expense.Expense, error) {
	rows, err := s.db.QueryContext(ctx, selectExpense+` ORDER BY e.date DESC, e.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*expense.Expense{}
	byID := make(map[int64]*expense.Expense)

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
		byID[e.ID] = e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	if len(expenses) == 0 {
		return expenses, nil
	}

	if err := s.loadSplits(ctx, byID); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (s *Store) GetExpense(ctx context.Context, id int64) (*expense.Expense, error) {
	return getExpense(ctx, s.db, id)
}

func getExpense(ctx context.Context, q database.Querier, id int64) (*expense.Expense, error) {
	e, err := scanExpense(q.QueryRowContext(ctx, selectExpense+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("expense", id)
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT name, amount FROM expense_splits WHERE expense_id = $1 ORDER BY position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("loading splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sp normalize.Split
		if err := rows.Scan(&sp.Name, &sp.Amount); err != nil {
			return nil, fmt.Errorf("scanning split: %w", err)
		}

		e.Splits = append(e.Splits, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating splits: %w", err)
	}

	return e, nil
}

func (s *Store) loadSplits(ctx context.Context, byID map[int64]*expense.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, name, amount FROM expense_splits ORDER BY expense_id ASC, position ASC`)
	if err != nil {
		return fmt.Errorf("loading splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id int64
			sp normalize.Split
		)

		if err := rows.Scan(&id, &sp.Name, &sp.Amount); err != nil {
			return fmt.Errorf("scanning split: %w", err)
		}

		if e, ok := byID[id]; ok {
			e.Splits = append(e.Splits, sp)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating splits: %w", err)
	}

	return nil
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		return insertExpense(ctx, tx, e)
	})
}

func (s *Store) CreateExpenses(ctx context.Context, es []*expense.Expense) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		for _, e := range es {
			if err := insertExpense(ctx, tx, e); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertExpense(ctx context.Context, tx *database.Tx, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (
			description, amount, date, category, notes, source_id,
			installment_count, installment_number, installment_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	count, number, amount := installmentArgs(e.Installment)

	err := tx.QueryRowContext(ctx, query,
		e.Description, e.Amount, e.Date, database.NullString(e.Category), database.NullString(e.Notes), e.SourceID,
		count, number, amount,
	).Scan(&e.ID)
	if err != nil {
		return mapWriteError("creating expense", err)
	}

	if err := insertSplits(ctx, tx, e); err != nil {
		return err
	}

	return loadSource(ctx, tx, e)
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		query := `
			UPDATE expenses SET
				description = $1, amount = $2, date = $3, category = $4, notes = $5, source_id = $6,
				installment_count = $7, installment_number = $8, installment_amount = $9
			WHERE id = $10`

		count, number, amount := installmentArgs(e.Installment)

		res, err := tx.ExecContext(ctx, query,
			e.Description, e.Amount, e.Date, database.NullString(e.Category), database.NullString(e.Notes), e.SourceID,
			count, number, amount, e.ID,
		)
		if err != nil {
			return mapWriteError("updating expense", err)
		}

		if err := expectRow(res, e.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, e.ID); err != nil {
			return fmt.Errorf("clearing splits: %w", err)
		}

		if err := insertSplits(ctx, tx, e); err != nil {
			return err
		}

		return loadSource(ctx, tx, e)
	})
}

func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return expectRow(res, id)
}

func (s *Store) SourceExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM sources WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking source: %w", err)
	}

	return exists, nil
}

func insertSplits(ctx context.Context, tx *database.Tx, e *expense.Expense) error {
	for i, sp := range e.Splits {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, position, name, amount) VALUES ($1, $2, $3, $4)`,
			e.ID, i, sp.Name, sp.Amount,
		)
		if err != nil {
			return fmt.Errorf("inserting split %d: %w", i, err)
		}
	}

	return nil
}

func loadSource(ctx context.Context, tx *database.Tx, e *expense.Expense) error {
	src := source.Source{}

	err := tx.QueryRowContext(ctx, `SELECT id, name, type FROM sources WHERE id = $1`, e.SourceID).
		Scan(&src.ID, &src.Name, &src.Type)
	if err != nil {
		return fmt.Errorf("loading source of expense: %w", err)
	}

	e.Source = &src

	return nil
}

func installmentArgs(inst *normalize.Installment) (count, number, amount any) {
	if inst == nil {
		return nil, nil, nil
	}

	if inst.Amount != nil {
		amount = *inst.Amount
	}

	return inst.Count, inst.Number, amount
}

func mapWriteError(op string, err error) error {
	switch {
	case database.IsCheckViolation(err):
		return expense.ErrNegativeAmount
	case database.IsForeignKeyViolation(err):
		return expense.ErrUnknownSource
	case database.IsNumericOutOfRange(err):
		return expense.ErrAmountOutOfRange
	}

	return fmt.Errorf("%s: %w", op, err)
}

func expectRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return apperror.NotFound("expense", id)
	}

	return nil
}
