package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusConflict, "client_phone_taken", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"client_phone_taken"}`, w.Body.String())

	w = httptest.NewRecorder()
	JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
	assert.JSONEq(t, `{"error":"validation_failed","details":{"name":"required"}}`, w.Body.String())
}

func TestDecode(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Azul"}`))
	require.NoError(t, Decode(r, &dst))
	assert.Equal(t, "Azul", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"} {"name":"b"}`))
	assert.Error(t, Decode(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, Decode(r, &dst))
}

func TestPathID(t *testing.T) {
	for raw, want := range map[string]uint{"12": 12, "0": 0, "abc": 0, "-3": 0} {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		id, ok := PathID(r)
		assert.Equal(t, want, id, raw)
		assert.Equal(t, want != 0, ok, raw)
	}
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}
