package normalize

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Date is a calendar date without time of day or zone.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) Time() time.Time { return d.t }
func (d Date) IsZero() bool     { return d.t.IsZero() }
func (d Date) String() string   { return d.t.Format(time.DateOnly) }

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDate(json.RawMessage(b))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Scan accepts DATE columns (time.Time) and ISO text columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	}

	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanText(s string) error {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("scanning date %q: %w", s, err)
	}

	*d = DateOf(t)

	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// isoLayouts are tried in order before the strict date-only layout.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var (
	minTimestamp = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxTimestamp = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// ParseDate parses an ISO-8601 date-time, a YYYY-MM-DD string or an epoch
// timestamp in seconds (local time).
func ParseDate(raw json.RawMessage) (Date, error) {
	v, err := decode(raw)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return DateValue(v)
}

// ParseDateOr behaves like ParseDate but returns fallback when raw is absent or null.
func ParseDateOr(raw json.RawMessage, fallback Date) (Date, error) {
	v, err := decode(raw)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if v == nil {
		return fallback, nil
	}

	return DateValue(v)
}

func DateValue(v any) (Date, error) {
	switch v := v.(type) {
	case Date:
		return v, nil
	case time.Time:
		return DateOf(v), nil
	case string:
		return parseDateString(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}

		return dateFromTimestamp(f)
	case float64:
		return dateFromTimestamp(v)
	case int64:
		return dateFromTimestamp(float64(v))
	case int:
		return dateFromTimestamp(float64(v))
	}

	return Date{}, ErrInvalidDate
}

func parseDateString(s string) (Date, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return DateOf(t), nil
}

func dateFromTimestamp(f float64) (Date, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Date{}, ErrInvalidDate
	}

	sec := math.Floor(f)
	if sec < float64(minTimestamp) || sec > float64(maxTimestamp) {
		return Date{}, fmt.Errorf("%w: timestamp %v out of range", ErrInvalidDate, f)
	}

	nsec := int64((f - sec) * float64(time.Second))

	return DateOf(time.Unix(int64(sec), nsec).In(time.Local)), nil
}
