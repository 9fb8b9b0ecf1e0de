package income

import (
	"encoding/json"

	"github.com/MrJamesThe3rd/budget/internal/http/respond"
	"github.com/MrJamesThe3rd/budget/internal/income"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

type incomeResponse struct {
	ID           int64          `json:"id"`
	Source       string         `json:"source"`
	Amount       json.Number    `json:"amount"`
	ReceivedDate normalize.Date `json:"received_date"`
	Category     *string        `json:"category"`
	Notes        *string        `json:"notes"`
}

func toResponse(i *income.Income) incomeResponse {
	return incomeResponse{
		ID:           i.ID,
		Source:       i.Source,
		Amount:       respond.Amount(i.Amount),
		ReceivedDate: i.ReceivedDate,
		Category:     i.Category,
		Notes:        i.Notes,
	}
}

func toResponseList(incomes []*income.Income) []incomeResponse {
	res := make([]incomeResponse, len(incomes))
	for i, inc := range incomes {
		res[i] = toResponse(inc)
	}

	return res
}
