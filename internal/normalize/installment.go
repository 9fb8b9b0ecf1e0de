package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Installment marks an expense as payment Number of Count.
type Installment struct {
	Count  int
	Number int
	Amount *decimal.Decimal
}

// Validate checks 1 <= Number <= Count.
func (i Installment) Validate() error {
	if i.Count <= 0 || i.Number <= 0 || i.Number > i.Count {
		return fmt.Errorf("%w: number %d of %d", ErrInvalidInstallment, i.Number, i.Count)
	}

	return nil
}

// ParseInstallment validates an {count, number, amount} object.
// A falsy value yields nil. An absent or unparseable amount is dropped
// rather than rejected.
func ParseInstallment(raw json.RawMessage) (*Installment, error) {
	v, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInstallment, err)
	}

	return InstallmentValue(v)
}

func InstallmentValue(v any) (*Installment, error) {
	if IsFalsyValue(v) {
		return nil, nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidInstallment)
	}

	count, err := IntegerValue(obj["count"])
	if err != nil {
		return nil, fmt.Errorf("%w: count: %v", ErrInvalidInstallment, err)
	}

	number, err := IntegerValue(obj["number"])
	if err != nil {
		return nil, fmt.Errorf("%w: number: %v", ErrInvalidInstallment, err)
	}

	inst := &Installment{Count: int(count), Number: int(number)}
	if int64(inst.Count) != count || int64(inst.Number) != number {
		return nil, fmt.Errorf("%w: out of range", ErrInvalidInstallment)
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}

	if amount, err := AmountValue(obj["amount"]); err == nil {
		inst.Amount = &amount
	}

	return inst, nil
}
