package debt

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budget/internal/debt"
	"github.com/MrJamesThe3rd/budget/internal/http/field"
	"github.com/MrJamesThe3rd/budget/internal/http/respond"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

type Handler struct {
	svc *debt.Service
}

func NewHandler(svc *debt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createDebtRequest struct {
	Creditor string          `json:"creditor"`
	Amount   json.RawMessage `json:"amount"`
	DueDate  json.RawMessage `json:"due_date"`
	Status   *string         `json:"status"`
	Notes    *string         `json:"notes"`
}

func (req createDebtRequest) params() (debt.CreateParams, error) {
	amount, err := field.Amount("amount", req.Amount)
	if err != nil {
		return debt.CreateParams{}, err
	}

	// A debt may have no due date, so absent and null both mean none.
	due, err := field.NullableDate("due_date", req.DueDate)
	if err != nil {
		return debt.CreateParams{}, err
	}

	return debt.CreateParams{
		Creditor: req.Creditor,
		Amount:   amount,
		DueDate:  due.Value,
		Status:   req.Status,
		Notes:    req.Notes,
	}, nil
}

type updateDebtRequest struct {
	Creditor normalize.Optional[*string] `json:"creditor"`
	Amount   json.RawMessage             `json:"amount"`
	DueDate  json.RawMessage             `json:"due_date"`
	Status   normalize.Optional[*string] `json:"status"`
	Notes    normalize.Optional[*string] `json:"notes"`
}

func (req updateDebtRequest) params() (debt.UpdateParams, error) {
	var (
		p   debt.UpdateParams
		err error
	)

	if p.Creditor, err = field.Text("creditor", req.Creditor); err != nil {
		return p, err
	}

	if p.Amount, err = field.OptionalAmount("amount", req.Amount); err != nil {
		return p, err
	}

	if p.DueDate, err = field.NullableDate("due_date", req.DueDate); err != nil {
		return p, err
	}

	p.Status = req.Status
	p.Notes = req.Notes

	return p, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	debts, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(debts))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(d))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "debt")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "debt")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateDebtRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "debt")
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
