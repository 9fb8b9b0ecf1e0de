// Package normalize turns loosely typed request values into validated domain values.
//
// Every parser accepts either a raw JSON fragment or an already decoded value
// (as produced by encoding/json with UseNumber, or by a form/CSV reader) and
// reports a sentinel error instead of panicking on malformed input.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidInteger     = errors.New("invalid integer")
	ErrInvalidSplits      = errors.New("invalid splits")
	ErrInvalidInstallment = errors.New("invalid installment")
)

// decode unmarshals a raw fragment keeping numbers as json.Number.
// An empty fragment decodes to nil.
func decode(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if dec.More() {
		return nil, errors.New("unexpected data after value")
	}

	return v, nil
}

// IsFalsy reports whether raw is absent, null, false, zero, or an empty
// string, array or object.
func IsFalsy(raw json.RawMessage) bool {
	v, err := decode(raw)
	if err != nil {
		return false
	}

	return IsFalsyValue(v)
}

func IsFalsyValue(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case float64:
		return v == 0
	case int:
		return v == 0
	case int64:
		return v == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	return false
}

// Optional records whether a JSON field was present in the payload,
// including when it was present with a null value.
type Optional[T any] struct {
	Set   bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}
