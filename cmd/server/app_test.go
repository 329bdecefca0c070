package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/azuldeco/azul-admin/internal/config"
	"github.com/azuldeco/azul-admin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppBootsSeededSQLite(t *testing.T) {
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", ShutdownTimeout: time.Second},
		Database:  config.DatabaseConfig{Driver: "sqlite", DSN: "file:app_e2e?mode=memory&cache=shared", Retries: 1},
		App:       config.AppConfig{Env: "test", Seed: true},
		Numbering: config.NumberingConfig{MaxAttempts: 5},
	}
	a, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	a.srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fabric-types", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var fabrics []struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fabrics))
	codes := []string{}
	for _, f := range fabrics {
		codes = append(codes, f.Code)
	}
	assert.ElementsMatch(t, []string{"BLACKOUT", "SUNSCREEN"}, codes)

	body := `{"type":"QUOTE","client":{"name":"Juan Pérez","phone":"3534123456"},"items":[{"productName":"Roller Blackout","width":150,"height":200,"unitPrice":15000}]}`
	w = httptest.NewRecorder()
	a.srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var doc struct {
		Number int     `json:"number"`
		Total  float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, 1, doc.Number)
	assert.Equal(t, 15000.0, doc.Total)

	w = httptest.NewRecorder()
	a.srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
