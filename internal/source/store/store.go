package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/database"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

const selectSourceColumns = `id, name, type`

func scanSource(row interface{ Scan(dest ...any) error }) (*source.Source, error) {
	var s source.Source
	if err := row.Scan(&s.ID, &s.Name, &s.Type); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Store) ListSources(ctx context.Context) ([]*source.Source, error) {
	query := `SELECT ` + selectSourceColumns + ` FROM sources ORDER BY name ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	defer rows.Close()

	sources := []*source.Source{}

	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}

		sources = append(sources, src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

func (s *Store) GetSource(ctx context.Context, id int64) (*source.Source, error) {
	query := `SELECT ` + selectSourceColumns + ` FROM sources WHERE id = $1`

	src, err := scanSource(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("source", id)
		}

		return nil, fmt.Errorf("getting source: %w", err)
	}

	return src, nil
}

func (s *Store) FindSourceByName(ctx context.Context, name string) (*source.Source, error) {
	query := `SELECT ` + selectSourceColumns + ` FROM sources WHERE name = $1`

	src, err := scanSource(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding source by name: %w", err)
	}

	return src, nil
}

func (s *Store) CreateSource(ctx context.Context, src *source.Source) error {
	query := `INSERT INTO sources (name, type) VALUES ($1, $2) RETURNING id`

	if err := s.db.QueryRowContext(ctx, query, src.Name, src.Type).Scan(&src.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return source.ErrDuplicateName
		}

		return fmt.Errorf("creating source: %w", err)
	}

	return nil
}

func (s *Store) UpdateSource(ctx context.Context, src *source.Source) error {
	query := `UPDATE sources SET name = $1, type = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, src.Name, src.Type, src.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return source.ErrDuplicateName
		}

		return fmt.Errorf("updating source: %w", err)
	}

	return expectRow(res, src.ID)
}

func (s *Store) DeleteSource(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return source.ErrInUse
		}

		return fmt.Errorf("deleting source: %w", err)
	}

	return expectRow(res, id)
}

func (s *Store) CountExpenses(ctx context.Context, id int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE source_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting expenses of source: %w", err)
	}

	return n, nil
}

func expectRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return apperror.NotFound("source", id)
	}

	return nil
}
