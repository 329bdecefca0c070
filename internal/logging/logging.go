// Package logging configures the logrus logger used across the service.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/azuldeco/azul-admin/internal/config"
	log "github.com/sirupsen/logrus"
)

// New builds a logger from config. Unknown levels fall back to info.
func New(cfg config.LogConfig) *log.Logger {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg config.LogConfig, out io.Writer) *log.Logger {
	l := log.New()
	l.SetOutput(out)
	if strings.EqualFold(cfg.Format, "text") {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	l.SetLevel(level)
	return l
}

// Discard is a logger for tests.
func Discard() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}
