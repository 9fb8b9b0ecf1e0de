package expense

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budget/internal/expense"
	"github.com/MrJamesThe3rd/budget/internal/http/field"
	"github.com/MrJamesThe3rd/budget/internal/http/respond"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// Amounts, dates, ids and the nested structures stay raw so they can be
// parsed leniently (strings or numbers) and reported per field.
type createExpenseRequest struct {
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Date        json.RawMessage `json:"date"`
	Category    *string         `json:"category"`
	Notes       *string         `json:"notes"`
	SourceID    json.RawMessage `json:"source_id"`
	Splits      json.RawMessage `json:"splits"`
	Installment json.RawMessage `json:"installment"`
}

func (req createExpenseRequest) params() (expense.CreateParams, error) {
	amount, err := field.Amount("amount", req.Amount)
	if err != nil {
		return expense.CreateParams{}, err
	}

	date, err := field.DateOrToday("date", req.Date)
	if err != nil {
		return expense.CreateParams{}, err
	}

	sourceID, err := field.ID("source_id", req.SourceID)
	if err != nil {
		return expense.CreateParams{}, err
	}

	splits, err := field.Splits(req.Splits)
	if err != nil {
		return expense.CreateParams{}, err
	}

	inst, err := field.Installment(req.Installment)
	if err != nil {
		return expense.CreateParams{}, err
	}

	return expense.CreateParams{
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		Category:    req.Category,
		Notes:       req.Notes,
		SourceID:    sourceID,
		Splits:      splits,
		Installment: inst,
	}, nil
}

type updateExpenseRequest struct {
	Description normalize.Optional[*string] `json:"description"`
	Amount      json.RawMessage             `json:"amount"`
	Date        json.RawMessage             `json:"date"`
	Category    normalize.Optional[*string] `json:"category"`
	Notes       normalize.Optional[*string] `json:"notes"`
	SourceID    json.RawMessage             `json:"source_id"`
	Splits      json.RawMessage             `json:"splits"`
	Installment json.RawMessage             `json:"installment"`
}

func (req updateExpenseRequest) params() (expense.UpdateParams, error) {
	var (
		p   expense.UpdateParams
		err error
	)

	if p.Description, err = field.Text("description", req.Description); err != nil {
		return p, err
	}

	if p.Amount, err = field.OptionalAmount("amount", req.Amount); err != nil {
		return p, err
	}

	if p.Date, err = field.OptionalDate("date", req.Date); err != nil {
		return p, err
	}

	if p.SourceID, err = field.OptionalID("source_id", req.SourceID); err != nil {
		return p, err
	}

	if p.Splits, err = field.OptionalSplits(req.Splits); err != nil {
		return p, err
	}

	if p.Installment, err = field.OptionalInstallment(req.Installment); err != nil {
		return p, err
	}

	p.Category = req.Category
	p.Notes = req.Notes

	return p, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(expenses))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "expense")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "expense")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateExpenseRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "expense")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}
