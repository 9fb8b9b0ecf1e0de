package income

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budget/internal/http/field"
	"github.com/MrJamesThe3rd/budget/internal/http/respond"
	"github.com/MrJamesThe3rd/budget/internal/income"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

type Handler struct {
	svc *income.Service
}

func NewHandler(svc *income.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createIncomeRequest struct {
	Source       string          `json:"source"`
	Amount       json.RawMessage `json:"amount"`
	ReceivedDate json.RawMessage `json:"received_date"`
	Category     *string         `json:"category"`
	Notes        *string         `json:"notes"`
}

func (req createIncomeRequest) params() (income.CreateParams, error) {
	amount, err := field.Amount("amount", req.Amount)
	if err != nil {
		return income.CreateParams{}, err
	}

	received, err := field.DateOrToday("received_date", req.ReceivedDate)
	if err != nil {
		return income.CreateParams{}, err
	}

	return income.CreateParams{
		Source:       req.Source,
		Amount:       amount,
		ReceivedDate: received,
		Category:     req.Category,
		Notes:        req.Notes,
	}, nil
}

type updateIncomeRequest struct {
	Source       normalize.Optional[*string] `json:"source"`
	Amount       json.RawMessage             `json:"amount"`
	ReceivedDate json.RawMessage             `json:"received_date"`
	Category     normalize.Optional[*string] `json:"category"`
	Notes        normalize.Optional[*string] `json:"notes"`
}

func (req updateIncomeRequest) params() (income.UpdateParams, error) {
	var (
		p   income.UpdateParams
		err error
	)

	if p.Source, err = field.Text("source", req.Source); err != nil {
		return p, err
	}

	if p.Amount, err = field.OptionalAmount("amount", req.Amount); err != nil {
		return p, err
	}

	if p.ReceivedDate, err = field.OptionalDate("received_date", req.ReceivedDate); err != nil {
		return p, err
	}

	p.Category = req.Category
	p.Notes = req.Notes

	return p, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(incomes))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createIncomeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	i, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(i))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "income")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	i, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(i))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "income")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateIncomeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	i, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(i))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "income")
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
