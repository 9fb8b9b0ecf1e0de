package source

import (
	"github.com/MrJamesThe3rd/budget/internal/apperror"
)

// Source is a payment method or account that expenses are drawn from.
// Type is a free-form tag such as "cash" or "credit_card".
type Source struct {
	ID   int64
	Name string
	Type string
}

var (
	ErrDuplicateName = apperror.Conflict("a source with this name already exists")
	ErrInUse         = apperror.Conflict("source is still used by expenses")
)
