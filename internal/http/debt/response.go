package debt

import (
	"encoding/json"

	"github.com/MrJamesThe3rd/budget/internal/debt"
	"github.com/MrJamesThe3rd/budget/internal/http/respond"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

type debtResponse struct {
	ID       int64           `json:"id"`
	Creditor string          `json:"creditor"`
	Amount   json.Number     `json:"amount"`
	DueDate  *normalize.Date `json:"due_date"`
	Status   *string         `json:"status"`
	Notes    *string         `json:"notes"`
}

func toResponse(d *debt.Debt) debtResponse {
	return debtResponse{
		ID:       d.ID,
		Creditor: d.Creditor,
		Amount:   respond.Amount(d.Amount),
		DueDate:  d.DueDate,
		Status:   d.Status,
		Notes:    d.Notes,
	}
}

func toResponseList(debts []*debt.Debt) []debtResponse {
	res := make([]debtResponse, len(debts))
	for i, d := range debts {
		res[i] = toResponse(d)
	}

	return res
}
