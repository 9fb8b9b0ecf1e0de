package expense

import (
	"encoding/json"

	"github.com/MrJamesThe3rd/budget/internal/expense"
	"github.com/MrJamesThe3rd/budget/internal/http/respond"
	sourcehttp "github.com/MrJamesThe3rd/budget/internal/http/source"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

type expenseResponse struct {
	ID          int64                `json:"id"`
	Description string               `json:"description"`
	Amount      json.Number          `json:"amount"`
	Date        normalize.Date       `json:"date"`
	Category    *string              `json:"category"`
	Notes       *string              `json:"notes"`
	SourceID    int64                `json:"source_id"`
	Source      *sourcehttp.Response `json:"source"`
	Splits      []splitResponse      `json:"splits"`
	Installment *installmentResponse `json:"installment"`
}

type splitResponse struct {
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
}

type installmentResponse struct {
	Count  int          `json:"count"`
	Number int          `json:"number"`
	Amount *json.Number `json:"amount"`
}

func toResponse(e *expense.Expense) expenseResponse {
	res := expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      respond.Amount(e.Amount),
		Date:        e.Date,
		Category:    e.Category,
		Notes:       e.Notes,
		SourceID:    e.SourceID,
	}

	if e.Source != nil {
		res.Source = new(sourcehttp.ToResponse(e.Source))
	}

	// No splits serializes as null rather than an empty list.
	for _, sp := range e.Splits {
		res.Splits = append(res.Splits, splitResponse{Name: sp.Name, Amount: respond.Amount(sp.Amount)})
	}

	if e.Installment != nil {
		res.Installment = &installmentResponse{
			Count:  e.Installment.Count,
			Number: e.Installment.Number,
			Amount: respond.OptionalAmount(e.Installment.Amount),
		}
	}

	return res
}

func toResponseList(expenses []*expense.Expense) []expenseResponse {
	res := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		res[i] = toResponse(e)
	}

	return res
}
