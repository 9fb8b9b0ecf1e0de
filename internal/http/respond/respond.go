// Package respond writes JSON responses and maps application errors to
// HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
)

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error renders err as {"error": "..."}. Errors outside the apperror
// taxonomy are logged and reported as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *apperror.ValidationError
		notFound   *apperror.NotFoundError
		conflict   *apperror.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &notFound):
		JSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
	case errors.As(err, &conflict):
		JSON(w, http.StatusConflict, errorResponse{Error: conflict.Error()})
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// ID reads the {id} URL parameter. A malformed id is reported as not found,
// like any other id that matches no entity.
func ID(r *http.Request, entity string) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &apperror.NotFoundError{Entity: entity, Key: raw}
	}

	return id, nil
}

// Decode reads a JSON object body into dst. An empty body leaves dst as is.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return apperror.Validation("", "invalid JSON body: "+err.Error())
	}

	return nil
}

// Amount renders a decimal as a JSON number with two decimal places.
func Amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(normalize.AmountPlaces))
}

func OptionalAmount(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}

	return new(Amount(*d))
}
