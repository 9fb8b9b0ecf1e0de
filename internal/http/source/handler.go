package source

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budget/internal/http/field"
	"github.com/MrJamesThe3rd/budget/internal/http/respond"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

type Handler struct {
	svc *source.Service
}

func NewHandler(svc *source.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createSourceRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type updateSourceRequest struct {
	Name normalize.Optional[*string] `json:"name"`
	Type normalize.Optional[*string] `json:"type"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sources, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(sources))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSourceRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	src, err := h.svc.Create(r.Context(), source.CreateParams{Name: req.Name, Type: req.Type})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(src))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "source")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	src, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(src))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "source")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateSourceRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	src, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(src))
}

func (req updateSourceRequest) params() (source.UpdateParams, error) {
	name, err := field.Text("name", req.Name)
	if err != nil {
		return source.UpdateParams{}, err
	}

	typ, err := field.Text("type", req.Type)
	if err != nil {
		return source.UpdateParams{}, err
	}

	return source.UpdateParams{Name: name, Type: typ}, nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "source")
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
