package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Split is one named share of an expense amount. Splits are informational
// and are not required to add up to the expense total.
type Split struct {
	Name   string
	Amount decimal.Decimal
}

// ParseSplits validates an ordered list of {name, amount} objects.
// A falsy value means "no splits" and yields a nil slice; any malformed
// entry rejects the whole list.
func ParseSplits(raw json.RawMessage) ([]Split, error) {
	v, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSplits, err)
	}

	return SplitsValue(v)
}

func SplitsValue(v any) ([]Split, error) {
	if IsFalsyValue(v) {
		return nil, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list", ErrInvalidSplits)
	}

	splits := make([]Split, 0, len(items))

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrInvalidSplits, i)
		}

		name, _ := obj["name"].(string)
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidSplits, i)
		}

		amount, err := AmountValue(obj["amount"])
		if err != nil || amount.IsNegative() {
			return nil, fmt.Errorf("%w: entry %d has an invalid amount", ErrInvalidSplits, i)
		}

		splits = append(splits, Split{Name: name, Amount: amount})
	}

	return splits, nil
}
