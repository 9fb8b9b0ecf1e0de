package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the fixed precision amounts are stored with.
const AmountPlaces = 2

// Amounts are stored as NUMERIC(12,2), so magnitudes stay below 10^10.
const (
	amountIntDigits = 10
	maxAmountLen    = 64
	// minAmountExp bounds how much precision is dropped by rounding.
	minAmountExp = -32
)

var maxAmount = decimal.New(1, amountIntDigits)

// ErrAmountOutOfRange is returned for amounts whose magnitude cannot be stored.
var ErrAmountOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidAmount)

// ParseAmount parses a JSON number or string into a decimal rounded to two places.
// Negative values are accepted; range checks belong to the caller.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	v, err := decode(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	return AmountValue(v)
}

func AmountValue(v any) (decimal.Decimal, error) {
	var (
		d   decimal.Decimal
		err error
	)

	switch v := v.(type) {
	case decimal.Decimal:
		d = v
	case json.Number:
		if len(v) > maxAmountLen {
			return decimal.Zero, ErrAmountOutOfRange
		}

		d, err = decimal.NewFromString(v.String())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, ErrInvalidAmount
		}

		if len(s) > maxAmountLen {
			return decimal.Zero, ErrAmountOutOfRange
		}

		d, err = decimal.NewFromString(s)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, ErrInvalidAmount
		}

		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	default:
		return decimal.Zero, ErrInvalidAmount
	}

	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	return bounded(d)
}

// bounded rounds d to cents after checking the exponent, since rescaling a
// value like 1e50000000 materializes every digit.
func bounded(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsZero() {
		return decimal.Zero, nil
	}

	exp := int(d.Exponent())
	if exp >= amountIntDigits || exp < minAmountExp || d.NumDigits()+exp > amountIntDigits {
		return decimal.Zero, ErrAmountOutOfRange
	}

	d = d.Round(AmountPlaces)
	if d.Abs().Cmp(maxAmount) >= 0 {
		return decimal.Zero, ErrAmountOutOfRange
	}

	return d, nil
}
