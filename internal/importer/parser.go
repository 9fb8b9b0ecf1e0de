package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/expense"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

var ErrEmpty = errors.New("no expense rows found")

// Row is one parsed expense with its 1-based line in the file.
type Row struct {
	Line   int
	Params expense.CreateParams
}

// Parse reads a UTF-8 CSV of expenses. The delimiter (';', ',' or tab) is
// taken from the first non-blank line. A header row, possibly preceded by a
// preamble, selects columns by name; without one the columns are date,
// description, amount, category, notes. Any invalid row fails the whole
// parse with its line number.
func Parse(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	type record struct {
		line  int
		cells []string
	}

	var records []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if blank(cells) {
			continue
		}

		records = append(records, record{line: line, cells: cells})
	}

	cols, start := positional, 0

	for i, rec := range records {
		if l, ok := matchHeader(rec.cells); ok {
			cols, start = l, i+1
			break
		}
	}

	var rows []Row

	for _, rec := range records[start:] {
		params, err := parseRow(cols, rec.cells)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.line, err)
		}

		rows = append(rows, Row{Line: rec.line, Params: params})
	}

	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	return rows, nil
}

func parseRow(cols layout, cells []string) (expense.CreateParams, error) {
	date, err := parseDate(cell(cells, cols[colDate]))
	if err != nil {
		return expense.CreateParams{}, err
	}

	desc := cell(cells, cols[colDescription])
	if desc == "" {
		return expense.CreateParams{}, errors.New("missing description")
	}

	amount, err := parseAmount(cell(cells, cols[colAmount]))
	if err != nil {
		return expense.CreateParams{}, err
	}

	if amount.IsNegative() {
		return expense.CreateParams{}, fmt.Errorf("amount %s must not be negative", amount.StringFixed(normalize.AmountPlaces))
	}

	return expense.CreateParams{
		Description: desc,
		Amount:      amount,
		Date:        date,
		Category:    optional(cell(cells, cols[colCategory])),
		Notes:       optional(cell(cells, cols[colNotes])),
	}, nil
}

// dayFirstLayouts cover bank exports; ISO dates are tried first.
var dayFirstLayouts = []string{"02.01.2006", "02/01/2006", "02-01-2006"}

func parseDate(s string) (normalize.Date, error) {
	if s == "" {
		return normalize.Date{}, errors.New("missing date")
	}

	if d, err := normalize.DateValue(s); err == nil {
		return d, nil
	}

	for _, l := range dayFirstLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return normalize.DateOf(t), nil
		}
	}

	return normalize.Date{}, fmt.Errorf("invalid date %q", s)
}

// parseAmount accepts both "1.250,50" and "1,250.50": whichever separator
// comes last is the decimal point. A trailing "TL" or "₺" is ignored.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSpace(strings.TrimSuffix(clean, "TL"))
	clean = strings.TrimSpace(strings.TrimSuffix(clean, "₺"))
	clean = strings.TrimPrefix(clean, "₺")
	clean = strings.ReplaceAll(clean, " ", "")

	if clean == "" {
		return decimal.Zero, errors.New("missing amount")
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case lastComma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := normalize.AmountValue(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	return d, nil
}

func detectDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		best, count := ',', bytes.Count(line, []byte{','})

		for _, c := range []rune{';', '\t'} {
			if n := bytes.Count(line, []byte(string(c))); n > count {
				best, count = c, n
			}
		}

		return best
	}

	return ','
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
