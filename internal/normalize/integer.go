package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseInteger parses a JSON integer, an integral number or an integer string.
func ParseInteger(raw json.RawMessage) (int64, error) {
	v, err := decode(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInteger, err)
	}

	return IntegerValue(v)
}

func IntegerValue(v any) (int64, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}

		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInteger, err)
		}

		return integralFloat(f)
	case float64:
		return integralFloat(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidInteger, v)
		}

		return n, nil
	}

	return 0, ErrInvalidInteger
}

func integralFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInteger, f)
	}

	return int64(f), nil
}
