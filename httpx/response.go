// Package httpx holds the small JSON response helpers shared by every handler.
package httpx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// maxBodyBytes caps request bodies; documents with many items stay well below it.
const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body := []byte("null")
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Decode reads a JSON body into dst. Empty bodies and trailing garbage are rejected.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(err, "decode body")
	}
	if dec.More() {
		return errors.New("decode body: unexpected trailing data")
	}
	return nil
}

// PathID parses the {id} route variable as a positive integer.
func PathID(r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID stores the request id for handlers and loggers downstream.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
