package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/app"
	"github.com/MrJamesThe3rd/budget/internal/database/dbtest"
	"github.com/MrJamesThe3rd/budget/internal/importer"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	svc := app.NewServices(dbtest.New(t))

	kart, err := svc.Sources.Create(ctx, source.CreateParams{Name: "Kredi Kartı", Type: "credit_card"})
	require.NoError(t, err)

	imp := importer.NewService(svc.Sources, svc.Expenses)

	t.Run("Success", func(t *testing.T) {
		csv := "Tarih;Açıklama;Tutar;Kategori\n05.03.2024;Market;1.250,50;Gıda\n06.03.2024;Benzin;850,75;Ulaşım\n"

		created, err := imp.Import(ctx, strings.NewReader(csv), importer.Options{Source: "Kredi Kartı"})
		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, kart.ID, created[0].SourceID)

		all, err := svc.Expenses.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("BadRowWritesNothing", func(t *testing.T) {
		csv := "2024-03-07;Kahve;85\n2024-03-08;Simit;beş lira\n"

		_, err := imp.Import(ctx, strings.NewReader(csv), importer.Options{Source: "Kredi Kartı"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")

		all, err := svc.Expenses.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("UnknownSource", func(t *testing.T) {
		_, err := imp.Import(ctx, strings.NewReader("2024-03-07;Kahve;85\n"), importer.Options{Source: "Nakit"})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("ExplicitCharset", func(t *testing.T) {
		// "2024-03-09;Çay;45" in Windows-1254.
		csv := []byte{'2', '0', '2', '4', '-', '0', '3', '-', '0', '9', ';', 0xC7, 'a', 'y', ';', '4', '5', '\n'}

		created, err := imp.Import(ctx, strings.NewReader(string(csv)), importer.Options{Source: "Kredi Kartı", Charset: "windows-1254"})
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, "Çay", created[0].Description)
	})
}
