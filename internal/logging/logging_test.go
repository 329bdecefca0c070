package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/azuldeco/azul-admin/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.WithFields(log.Fields{"documentType": "QUOTE", "number": 3}).Info("document created")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "document created", entry["msg"])
	assert.Equal(t, "QUOTE", entry["documentType"])
	assert.Equal(t, float64(3), entry["number"])
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(config.LogConfig{Level: "chatty", Format: "text"}, &buf)
	assert.Equal(t, log.InfoLevel, l.GetLevel())
	l.Debug("hidden")
	assert.Empty(t, buf.String())
	l.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}
