package income

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

// Income is money received. Source is a free-text label such as an employer
// and is unrelated to the payment sources expenses are drawn from.
type Income struct {
	ID           int64
	Source       string
	Amount       decimal.Decimal
	ReceivedDate normalize.Date
	Category     *string
	Notes        *string
}

var (
	ErrNegativeAmount   = apperror.Validation("amount", "must not be negative")
	ErrAmountOutOfRange = apperror.Validation("amount", "must be less than 10000000000 in magnitude")
)
