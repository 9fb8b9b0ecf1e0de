package debt

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

// Debt is money owed to a creditor.
//
// Unlike expenses and incomes, the amount is not constrained to be
// non-negative at the storage layer.
type Debt struct {
	ID       int64
	Creditor string
	Amount   decimal.Decimal
	DueDate  *normalize.Date
	Status   *string
	Notes    *string
}

var ErrAmountOutOfRange = apperror.Validation("amount", "must be less than 10000000000 in magnitude")
