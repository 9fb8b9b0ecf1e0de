package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/database/dbtest"
	"github.com/MrJamesThe3rd/budget/internal/income"
	"github.com/MrJamesThe3rd/budget/internal/income/store"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

func TestStore(t *testing.T) {
	s := store.New(dbtest.New(t))
	ctx := context.Background()

	maas := &income.Income{
		Source:       "Maaş",
		Amount:       decimal.RequireFromString("45000"),
		ReceivedDate: normalize.NewDate(2024, 3, 1),
		Category:     ptr("Maaş"),
	}
	kira := &income.Income{
		Source:       "Kira geliri",
		Amount:       decimal.RequireFromString("12000.75"),
		ReceivedDate: normalize.NewDate(2024, 3, 10),
		Notes:        ptr("Mart"),
	}

	require.NoError(t, s.CreateIncome(ctx, maas))
	require.NoError(t, s.CreateIncome(ctx, kira))

	t.Run("ListNewestFirst", func(t *testing.T) {
		got, err := s.ListIncomes(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, kira.ID, got[0].ID)
		assert.Equal(t, maas.ID, got[1].ID)
	})

	t.Run("GetRoundTrip", func(t *testing.T) {
		got, err := s.GetIncome(ctx, kira.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kira geliri", got.Source)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("12000.75")))
		assert.Equal(t, "2024-03-10", got.ReceivedDate.String())
		assert.Nil(t, got.Category)
		require.NotNil(t, got.Notes)
		assert.Equal(t, "Mart", *got.Notes)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		err := s.CreateIncome(ctx, &income.Income{
			Source:       "İade",
			Amount:       decimal.RequireFromString("-5"),
			ReceivedDate: normalize.NewDate(2024, 3, 11),
		})
		assert.ErrorIs(t, err, income.ErrNegativeAmount)

		upd := *maas
		upd.Amount = decimal.RequireFromString("-1")
		assert.ErrorIs(t, s.UpdateIncome(ctx, &upd), income.ErrNegativeAmount)
	})

	t.Run("Update", func(t *testing.T) {
		upd := *maas
		upd.Category = nil
		upd.Amount = decimal.RequireFromString("46000")
		require.NoError(t, s.UpdateIncome(ctx, &upd))

		got, err := s.GetIncome(ctx, maas.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Category)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("46000")))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.DeleteIncome(ctx, kira.ID))
		assert.True(t, apperror.IsNotFound(s.DeleteIncome(ctx, kira.ID)))

		_, err := s.GetIncome(ctx, kira.ID)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func ptr[T any](v T) *T { return &v }
