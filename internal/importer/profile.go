package importer

import "strings"

type column int

const (
	colDate column = iota
	colDescription
	colAmount
	colCategory
	colNotes
)

// headerAliases lists the accepted header names per column, compared after
// lowercasing and trimming. Bank exports use the Turkish names.
var headerAliases = map[column][]string{
	colDate:        {"date", "tarih", "işlem tarihi", "islem tarihi"},
	colDescription: {"description", "açıklama", "aciklama", "işlem açıklaması", "işlem"},
	colAmount:      {"amount", "tutar", "işlem tutarı", "tutar (tl)"},
	colCategory:    {"category", "kategori"},
	colNotes:       {"notes", "note", "not", "notlar"},
}

// layout maps columns to cell indexes; -1 marks an absent optional column.
type layout map[column]int

// positional is used when the file has no header row.
var positional = layout{
	colDate:        0,
	colDescription: 1,
	colAmount:      2,
	colCategory:    3,
	colNotes:       4,
}

// headerKey folds "İ" to "i" first; strings.ToLower would keep a combining dot.
func headerKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "İ", "i"))
}

// matchHeader returns the layout of row when it names at least the date,
// description and amount columns.
func matchHeader(row []string) (layout, bool) {
	cells := make(map[string]int, len(row))
	for i, cell := range row {
		if k := headerKey(cell); k != "" {
			if _, seen := cells[k]; !seen {
				cells[k] = i
			}
		}
	}

	l := layout{}

	for col, aliases := range headerAliases {
		l[col] = -1

		for _, alias := range aliases {
			if idx, ok := cells[headerKey(alias)]; ok {
				l[col] = idx
				break
			}
		}
	}

	for _, required := range []column{colDate, colDescription, colAmount} {
		if l[required] < 0 {
			return nil, false
		}
	}

	return l, true
}
