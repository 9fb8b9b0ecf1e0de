package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/database/dbtest"
	"github.com/MrJamesThe3rd/budget/internal/source"
	"github.com/MrJamesThe3rd/budget/internal/source/store"
)

func TestStore(t *testing.T) {
	db := dbtest.New(t)
	s := store.New(db)
	ctx := context.Background()

	create := func(name, typ string) *source.Source {
		src := &source.Source{Name: name, Type: typ}
		require.NoError(t, s.CreateSource(ctx, src))
		require.NotZero(t, src.ID)

		return src
	}

	nakit := create("Nakit", "cash")
	kart := create("Kredi Kartı", "credit_card")
	create("Borç", "debt")

	t.Run("ListOrderedByName", func(t *testing.T) {
		got, err := s.ListSources(ctx)
		require.NoError(t, err)

		names := make([]string, len(got))
		for i, src := range got {
			names[i] = src.Name
		}

		assert.Equal(t, []string{"Borç", "Kredi Kartı", "Nakit"}, names)
	})

	t.Run("Get", func(t *testing.T) {
		got, err := s.GetSource(ctx, kart.ID)
		require.NoError(t, err)
		assert.Equal(t, kart, got)

		_, err = s.GetSource(ctx, 999)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("FindByNameIsExact", func(t *testing.T) {
		got, err := s.FindSourceByName(ctx, "Nakit")
		require.NoError(t, err)
		assert.Equal(t, nakit.ID, got.ID)

		got, err = s.FindSourceByName(ctx, "nakit")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("UniqueViolationIsConflict", func(t *testing.T) {
		err := s.CreateSource(ctx, &source.Source{Name: "Nakit", Type: "wallet"})
		assert.ErrorIs(t, err, source.ErrDuplicateName)

		err = s.UpdateSource(ctx, &source.Source{ID: kart.ID, Name: "Nakit", Type: "credit_card"})
		assert.ErrorIs(t, err, source.ErrDuplicateName)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := s.UpdateSource(ctx, &source.Source{ID: 999, Name: "X", Type: "y"})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("DeleteReferencedIsRestricted", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			`INSERT INTO expenses (description, amount, date, source_id) VALUES ($1, $2, $3, $4)`,
			"Benzin", "850.75", "2024-03-05", nakit.ID,
		)
		require.NoError(t, err)

		n, err := s.CountExpenses(ctx, nakit.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		err = s.DeleteSource(ctx, nakit.ID)
		assert.ErrorIs(t, err, source.ErrInUse)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.DeleteSource(ctx, kart.ID))

		_, err := s.GetSource(ctx, kart.ID)
		assert.True(t, apperror.IsNotFound(err))

		err = s.DeleteSource(ctx, kart.ID)
		assert.True(t, apperror.IsNotFound(err))
	})
}
