package expense

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

// Expense is money spent from a Source. It may carry a split breakdown,
// installment metadata, both, or neither.
type Expense struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	Date        normalize.Date
	Category    *string
	Notes       *string
	SourceID    int64
	Source      *source.Source // Loaded via JOIN
	Splits      []normalize.Split
	Installment *normalize.Installment
}

var (
	ErrUnknownSource  = apperror.Validation("source_id", "unknown source")
	ErrNegativeAmount = apperror.Validation("amount", "must not be negative")

	ErrAmountOutOfRange = apperror.Validation("amount", "must be less than 10000000000 in magnitude")
)
