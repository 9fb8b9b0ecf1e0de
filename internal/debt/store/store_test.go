package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/database/dbtest"
	"github.com/MrJamesThe3rd/budget/internal/debt"
	"github.com/MrJamesThe3rd/budget/internal/debt/store"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

func TestStore(t *testing.T) {
	s := store.New(dbtest.New(t))
	ctx := context.Background()

	open := &debt.Debt{Creditor: "Ahmet", Amount: decimal.RequireFromString("2000")}
	later := &debt.Debt{Creditor: "Banka", Amount: decimal.RequireFromString("15000"), DueDate: dateOf(2024, 6, 30), Status: ptr("open")}
	soon := &debt.Debt{Creditor: "Ayşe", Amount: decimal.RequireFromString("500"), DueDate: dateOf(2024, 4, 15)}

	for _, d := range []*debt.Debt{open, later, soon} {
		require.NoError(t, s.CreateDebt(ctx, d))
	}

	t.Run("ListByDueDateNullsLast", func(t *testing.T) {
		got, err := s.ListDebts(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int64{soon.ID, later.ID, open.ID}, []int64{got[0].ID, got[1].ID, got[2].ID})
		assert.Nil(t, got[2].DueDate)
		assert.Equal(t, "2024-04-15", got[0].DueDate.String())
	})

	t.Run("NegativeAmountAccepted", func(t *testing.T) {
		d := &debt.Debt{Creditor: "Düzeltme", Amount: decimal.RequireFromString("-5")}
		require.NoError(t, s.CreateDebt(ctx, d))

		got, err := s.GetDebt(ctx, d.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("-5")))
	})

	t.Run("UpdateClearsDueDate", func(t *testing.T) {
		upd := *later
		upd.DueDate = nil
		upd.Status = ptr("paid")
		require.NoError(t, s.UpdateDebt(ctx, &upd))

		got, err := s.GetDebt(ctx, later.ID)
		require.NoError(t, err)
		assert.Nil(t, got.DueDate)
		assert.Equal(t, "paid", *got.Status)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := s.GetDebt(ctx, 999)
		assert.True(t, apperror.IsNotFound(err))
		assert.True(t, apperror.IsNotFound(s.UpdateDebt(ctx, &debt.Debt{ID: 999, Creditor: "x"})))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.DeleteDebt(ctx, open.ID))
		assert.True(t, apperror.IsNotFound(s.DeleteDebt(ctx, open.ID)))
	})
}

func dateOf(y int, m time.Month, d int) *normalize.Date {
	v := normalize.NewDate(y, m, d)
	return &v
}

func ptr[T any](v T) *T { return &v }
