package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

const dbTimeout = 5 * time.Second

func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func FormatDate(d *normalize.Date) string {
	if d == nil {
		return "-"
	}

	return d.String()
}

func FormatText(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
