package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budget/internal/app"
	"github.com/MrJamesThe3rd/budget/internal/database/dbtest"
	budgetHttp "github.com/MrJamesThe3rd/budget/internal/http"
	"github.com/MrJamesThe3rd/budget/internal/http/field"
	"github.com/MrJamesThe3rd/budget/internal/metrics"
)

type client struct {
	t *testing.T
	h http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()

	h := app.NewServices(dbtest.New(t)).Handler(budgetHttp.Options{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:        metrics.NewHTTP("budget"),
		AllowedOrigins: []string{"*"},
	})

	return &client{t: t, h: h}
}

// do sends body as JSON and decodes the response keeping numbers exact.
func (c *client) do(method, path, body string) (int, any) {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	if rec.Body.Len() == 0 {
		return rec.Code, nil
	}

	var out any
	dec := json.NewDecoder(rec.Body)
	dec.UseNumber()

	if err := dec.Decode(&out); err != nil {
		return rec.Code, rec.Body.String()
	}

	return rec.Code, out
}

func (c *client) create(path, body string) map[string]any {
	c.t.Helper()

	code, out := c.do(http.MethodPost, path, body)
	require.Equal(c.t, http.StatusCreated, code, "%v", out)

	return out.(map[string]any)
}

func obj(v any) map[string]any { return v.(map[string]any) }

func list(v any) []any { return v.([]any) }

func errMsg(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Sprint(v)
	}

	s, _ := m["error"].(string)

	return s
}

func TestRouter_Meta(t *testing.T) {
	c := newClient(t)

	code, out := c.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"status": "ok"}, out)

	code, out = c.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, obj(out)["endpoints"], "POST /expenses")

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	c.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/health"`)
}

func TestRouter_Sources(t *testing.T) {
	c := newClient(t)

	ana := c.create("/sources", `{"name":"Ana hesap","type":"bank"}`)
	yedek := c.create("/sources", `{"name":"Yedek hesap","type":"cash"}`)

	t.Run("DuplicateNameAnyType", func(t *testing.T) {
		code, out := c.do(http.MethodPost, "/sources", `{"name":"Ana hesap","type":"cash"}`)
		assert.Equal(t, http.StatusConflict, code)
		assert.NotEmpty(t, errMsg(out))
	})

	t.Run("MissingFields", func(t *testing.T) {
		code, out := c.do(http.MethodPost, "/sources", `{"type":"cash"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, errMsg(out), "name")
	})

	t.Run("ListByName", func(t *testing.T) {
		code, out := c.do(http.MethodGet, "/sources", "")
		require.Equal(t, http.StatusOK, code)
		require.Len(t, list(out), 2)
		assert.Equal(t, "Ana hesap", obj(list(out)[0])["name"])
	})

	t.Run("RenameToOtherName", func(t *testing.T) {
		code, _ := c.do(http.MethodPut, fmt.Sprintf("/sources/%v", yedek["id"]), `{"name":"Ana hesap"}`)
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("RenameToOwnName", func(t *testing.T) {
		code, out := c.do(http.MethodPut, fmt.Sprintf("/sources/%v", yedek["id"]), `{"name":"Yedek hesap","type":"savings"}`)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "savings", obj(out)["type"])
	})

	t.Run("NullNameRejected", func(t *testing.T) {
		code, _ := c.do(http.MethodPut, fmt.Sprintf("/sources/%v", yedek["id"]), `{"name":null}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("NotFound", func(t *testing.T) {
		code, _ := c.do(http.MethodGet, "/sources/999", "")
		assert.Equal(t, http.StatusNotFound, code)

		code, _ = c.do(http.MethodGet, "/sources/abc", "")
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("DeleteInUse", func(t *testing.T) {
		c.create("/expenses", fmt.Sprintf(`{"description":"Kahve","amount":85,"source_id":%v}`, ana["id"]))

		code, out := c.do(http.MethodDelete, fmt.Sprintf("/sources/%v", ana["id"]), "")
		assert.Equal(t, http.StatusConflict, code)
		assert.Contains(t, errMsg(out), "1 expense(s)")
	})

	t.Run("Delete", func(t *testing.T) {
		code, _ := c.do(http.MethodDelete, fmt.Sprintf("/sources/%v", yedek["id"]), "")
		assert.Equal(t, http.StatusNoContent, code)

		code, _ = c.do(http.MethodDelete, fmt.Sprintf("/sources/%v", yedek["id"]), "")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestRouter_Expenses(t *testing.T) {
	c := newClient(t)

	kart := c.create("/sources", `{"name":"Kredi Kartı","type":"credit_card"}`)
	sourceID := kart["id"]

	t.Run("CreateWithSplits", func(t *testing.T) {
		e := c.create("/expenses", fmt.Sprintf(`{
			"description": "Market",
			"amount": "1250.5",
			"date": "2024-03-05",
			"category": "Gıda",
			"source_id": %v,
			"splits": [{"name":"Gıda","amount":900.3},{"name":"Temizlik","amount":350}]
		}`, sourceID))

		assert.Equal(t, json.Number("1250.50"), e["amount"])
		assert.Equal(t, "2024-03-05", e["date"])
		assert.Equal(t, "Kredi Kartı", obj(e["source"])["name"])
		assert.Nil(t, e["installment"])

		splits := list(e["splits"])
		require.Len(t, splits, 2)
		assert.Equal(t, map[string]any{"name": "Gıda", "amount": json.Number("900.30")}, splits[0])
		assert.Equal(t, map[string]any{"name": "Temizlik", "amount": json.Number("350.00")}, splits[1])

		code, out := c.do(http.MethodGet, fmt.Sprintf("/expenses/%v", e["id"]), "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, e, out)
	})

	t.Run("CreateWithInstallment", func(t *testing.T) {
		e := c.create("/expenses", fmt.Sprintf(`{
			"description": "Telefon",
			"amount": 7500,
			"date": "2024-03-01T00:00:00",
			"source_id": "%v",
			"installment": {"count":12,"number":5,"amount":7500}
		}`, sourceID))

		assert.Equal(t, "2024-03-01", e["date"])
		assert.Equal(t, map[string]any{
			"count":  json.Number("12"),
			"number": json.Number("5"),
			"amount": json.Number("7500.00"),
		}, e["installment"])
		assert.Nil(t, e["splits"])
	})

	t.Run("DateDefaultsToToday", func(t *testing.T) {
		now := field.Now
		field.Now = func() time.Time { return time.Date(2024, 3, 20, 23, 59, 59, 0, time.Local) }
		t.Cleanup(func() { field.Now = now })

		e := c.create("/expenses", fmt.Sprintf(`{"description":"Simit","amount":15,"source_id":%v}`, sourceID))
		assert.Equal(t, "2024-03-20", e["date"])
	})

	t.Run("Rejected", func(t *testing.T) {
		tests := []struct {
			name  string
			body  string
			field string
		}{
			{"MissingSource", `{"description":"X","amount":1}`, "source_id"},
			{"UnknownSource", `{"description":"X","amount":1,"source_id":999}`, "source_id"},
			{"BadAmount", fmt.Sprintf(`{"description":"X","amount":"abc","source_id":%v}`, sourceID), "amount"},
			{"NegativeAmount", fmt.Sprintf(`{"description":"X","amount":-5,"source_id":%v}`, sourceID), "amount"},
			{"BadDate", fmt.Sprintf(`{"description":"X","amount":1,"date":"05/03/2024","source_id":%v}`, sourceID), "date"},
			{"EmptySplitName", fmt.Sprintf(`{"description":"X","amount":1,"source_id":%v,"splits":[{"name":"","amount":1}]}`, sourceID), "splits"},
			{"InstallmentOverCount", fmt.Sprintf(`{"description":"X","amount":1,"source_id":%v,"installment":{"count":3,"number":5}}`, sourceID), "installment"},
			{"MissingDescription", fmt.Sprintf(`{"amount":1,"source_id":%v}`, sourceID), "description"},
			{"MalformedJSON", `{"description":`, "invalid JSON"},
			{"AmountTooLarge", fmt.Sprintf(`{"description":"X","amount":10000000000,"source_id":%v}`, sourceID), "must be less than 10000000000"},
			{"AmountHugeExponent", fmt.Sprintf(`{"description":"X","amount":"1e50000000","source_id":%v}`, sourceID), "must be less than 10000000000"},
			{"SplitHugeExponent", fmt.Sprintf(`{"description":"X","amount":1,"source_id":%v,"splits":[{"name":"A","amount":1e50000000}]}`, sourceID), "splits"},
			{"OversizedBody", fmt.Sprintf(`{"description":"%s","amount":1,"source_id":%v}`, strings.Repeat("x", 2<<20), sourceID), "invalid JSON"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				code, out := c.do(http.MethodPost, "/expenses", tt.body)
				assert.Equal(t, http.StatusBadRequest, code)
				assert.Contains(t, errMsg(out), tt.field)
			})
		}

		code, out := c.do(http.MethodGet, "/expenses", "")
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, list(out), 3)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		_, out := c.do(http.MethodGet, "/expenses", "")

		var descriptions []any
		for _, e := range list(out) {
			descriptions = append(descriptions, obj(e)["description"])
		}

		assert.Equal(t, []any{"Simit", "Market", "Telefon"}, descriptions)
	})

	t.Run("UpdateClearsSubStructures", func(t *testing.T) {
		e := c.create("/expenses", fmt.Sprintf(`{
			"description": "Kira",
			"amount": 15000,
			"date": "2024-02-01",
			"source_id": %v,
			"splits": [{"name":"Ev","amount":15000}],
			"installment": {"count":12,"number":1}
		}`, sourceID))

		path := fmt.Sprintf("/expenses/%v", e["id"])

		code, out := c.do(http.MethodPut, path, `{"splits":[],"installment":null,"notes":"Şubat"}`)
		require.Equal(t, http.StatusOK, code)
		assert.Nil(t, obj(out)["splits"])
		assert.Nil(t, obj(out)["installment"])
		assert.Equal(t, "Şubat", obj(out)["notes"])
		assert.Equal(t, json.Number("15000.00"), obj(out)["amount"])
	})

	t.Run("InvalidFieldAbortsUpdate", func(t *testing.T) {
		e := c.create("/expenses", fmt.Sprintf(`{"description":"Benzin","amount":"850.75","source_id":%v}`, sourceID))
		path := fmt.Sprintf("/expenses/%v", e["id"])

		code, _ := c.do(http.MethodPut, path, `{"description":"Mazot","amount":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, code)

		_, out := c.do(http.MethodGet, path, "")
		assert.Equal(t, "Benzin", obj(out)["description"])

		code, out = c.do(http.MethodPut, path, "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, e, out)
	})

	t.Run("Delete", func(t *testing.T) {
		code, _ := c.do(http.MethodDelete, "/expenses/999", "")
		assert.Equal(t, http.StatusNotFound, code)

		e := c.create("/expenses", fmt.Sprintf(`{"description":"Geçici","amount":1,"source_id":%v}`, sourceID))
		path := fmt.Sprintf("/expenses/%v", e["id"])

		code, _ = c.do(http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNoContent, code)

		code, _ = c.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("RequiresJSONContentType", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString(`description=x`))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		c.h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestRouter_Incomes(t *testing.T) {
	c := newClient(t)

	c.create("/incomes", `{"source":"Maaş","amount":45000,"received_date":"2024-03-01"}`)
	kira := c.create("/incomes", `{"source":"Kira geliri","amount":"12000.5","received_date":"2024-03-10","category":"Kira"}`)

	assert.Equal(t, json.Number("12000.50"), kira["amount"])
	assert.Equal(t, "2024-03-10", kira["received_date"])

	code, out := c.do(http.MethodPost, "/incomes", `{"source":"İade","amount":-5}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, errMsg(out), "amount")

	code, out = c.do(http.MethodPost, "/incomes", `{"source":"x","amount":"1e20000000"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, errMsg(out), "must be less than 10000000000")

	c.create("/incomes", `{"source":"Büyük","amount":"9999999999.99","received_date":"2024-02-01"}`)

	_, out = c.do(http.MethodGet, "/incomes", "")
	require.Len(t, list(out), 3)
	assert.Equal(t, "Kira geliri", obj(list(out)[0])["source"])

	path := fmt.Sprintf("/incomes/%v", kira["id"])

	code, out = c.do(http.MethodPut, path, `{"category":null,"received_date":"2024-03-11"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, obj(out)["category"])
	assert.Equal(t, "2024-03-11", obj(out)["received_date"])

	code, _ = c.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, code)
}

func TestRouter_Debts(t *testing.T) {
	c := newClient(t)

	open := c.create("/debts", `{"creditor":"Ahmet","amount":2000}`)
	c.create("/debts", `{"creditor":"Banka","amount":15000,"due_date":"2024-06-30","status":"open"}`)
	c.create("/debts", `{"creditor":"Ayşe","amount":500,"due_date":"2024-04-15"}`)

	assert.Nil(t, open["due_date"])

	t.Run("NegativeAmountAccepted", func(t *testing.T) {
		d := c.create("/debts", `{"creditor":"Düzeltme","amount":-5}`)
		assert.Equal(t, json.Number("-5.00"), d["amount"])
	})

	t.Run("ListByDueDateNullsLast", func(t *testing.T) {
		_, out := c.do(http.MethodGet, "/debts", "")

		var creditors []any
		for _, d := range list(out) {
			creditors = append(creditors, obj(d)["creditor"])
		}

		assert.Equal(t, []any{"Ayşe", "Banka", "Ahmet", "Düzeltme"}, creditors)
	})

	t.Run("NullDueDateClears", func(t *testing.T) {
		d := c.create("/debts", `{"creditor":"Kardeş","amount":100,"due_date":"2024-05-01"}`)
		path := fmt.Sprintf("/debts/%v", d["id"])

		code, out := c.do(http.MethodPut, path, `{"due_date":null}`)
		require.Equal(t, http.StatusOK, code)
		assert.Nil(t, obj(out)["due_date"])

		code, _ = c.do(http.MethodPut, path, `{"due_date":"yarın"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("MissingCreditor", func(t *testing.T) {
		code, out := c.do(http.MethodPost, "/debts", `{"amount":1}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, errMsg(out), "creditor")
	})
}
