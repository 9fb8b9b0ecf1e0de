// Package field converts raw request fields into validated values, reporting
// failures as apperror validation errors named after the JSON field.
//
// A nil json.RawMessage means the field was absent from the body; a present
// null arrives as the literal "null".
package field

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

// Now is the clock used for dates defaulting to today.
var Now = time.Now

func Today() normalize.Date {
	return normalize.DateOf(Now())
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func missing(raw json.RawMessage) bool {
	return raw == nil || isNull(raw)
}

func Amount(name string, raw json.RawMessage) (decimal.Decimal, error) {
	if missing(raw) {
		return decimal.Zero, apperror.Validation(name, "is required")
	}

	d, err := normalize.ParseAmount(raw)
	if errors.Is(err, normalize.ErrAmountOutOfRange) {
		return decimal.Zero, apperror.Validation(name, "must be less than 10000000000 in magnitude")
	}

	if err != nil {
		return decimal.Zero, apperror.Validation(name, "must be a valid number")
	}

	return d, nil
}

// OptionalAmount returns nil when the field is absent.
func OptionalAmount(name string, raw json.RawMessage) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}

	d, err := Amount(name, raw)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// DateOrToday defaults an absent or null date to the current day.
func DateOrToday(name string, raw json.RawMessage) (normalize.Date, error) {
	d, err := normalize.ParseDateOr(raw, Today())
	if err != nil {
		return normalize.Date{}, dateError(name)
	}

	return d, nil
}

// OptionalDate returns nil when the field is absent. A present null is
// invalid; use NullableDate for clearable dates.
func OptionalDate(name string, raw json.RawMessage) (*normalize.Date, error) {
	if raw == nil {
		return nil, nil
	}

	d, err := normalize.ParseDate(raw)
	if err != nil {
		return nil, dateError(name)
	}

	return &d, nil
}

// NullableDate distinguishes absent (unset), null (set to nil) and a value.
func NullableDate(name string, raw json.RawMessage) (normalize.Optional[*normalize.Date], error) {
	switch {
	case raw == nil:
		return normalize.Optional[*normalize.Date]{}, nil
	case isNull(raw):
		return normalize.Some[*normalize.Date](nil), nil
	}

	d, err := OptionalDate(name, raw)
	if err != nil {
		return normalize.Optional[*normalize.Date]{}, err
	}

	return normalize.Some(d), nil
}

func dateError(name string) error {
	return apperror.Validation(name, "must be an ISO-8601 date (YYYY-MM-DD)")
}

func ID(name string, raw json.RawMessage) (int64, error) {
	if missing(raw) {
		return 0, apperror.Validation(name, "is required")
	}

	n, err := normalize.ParseInteger(raw)
	if err != nil {
		return 0, apperror.Validation(name, "must be an integer")
	}

	return n, nil
}

func OptionalID(name string, raw json.RawMessage) (*int64, error) {
	if raw == nil {
		return nil, nil
	}

	n, err := ID(name, raw)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// Text rejects a present null for a text field that cannot be cleared.
func Text(name string, o normalize.Optional[*string]) (*string, error) {
	if !o.Set {
		return nil, nil
	}

	if o.Value == nil {
		return nil, apperror.Validation(name, "must not be null")
	}

	return o.Value, nil
}

func Splits(raw json.RawMessage) ([]normalize.Split, error) {
	splits, err := normalize.ParseSplits(raw)
	if err != nil {
		return nil, apperror.Validation("splits", reason(err, normalize.ErrInvalidSplits))
	}

	return splits, nil
}

// OptionalSplits returns an unset Optional when the field is absent and a set
// nil slice when it is present but falsy.
func OptionalSplits(raw json.RawMessage) (normalize.Optional[[]normalize.Split], error) {
	if raw == nil {
		return normalize.Optional[[]normalize.Split]{}, nil
	}

	splits, err := Splits(raw)
	if err != nil {
		return normalize.Optional[[]normalize.Split]{}, err
	}

	return normalize.Some(splits), nil
}

func Installment(raw json.RawMessage) (*normalize.Installment, error) {
	inst, err := normalize.ParseInstallment(raw)
	if err != nil {
		return nil, apperror.Validation("installment", reason(err, normalize.ErrInvalidInstallment))
	}

	return inst, nil
}

func OptionalInstallment(raw json.RawMessage) (normalize.Optional[*normalize.Installment], error) {
	if raw == nil {
		return normalize.Optional[*normalize.Installment]{}, nil
	}

	inst, err := Installment(raw)
	if err != nil {
		return normalize.Optional[*normalize.Installment]{}, err
	}

	return normalize.Some(inst), nil
}

// reason drops the sentinel prefix, which the field name already conveys.
func reason(err, sentinel error) string {
	msg := err.Error()
	if errors.Is(err, sentinel) {
		msg = strings.TrimPrefix(msg, sentinel.Error())
		msg = strings.TrimPrefix(msg, ": ")
	}

	if msg == "" {
		return "is invalid"
	}

	return "is invalid: " + msg
}
