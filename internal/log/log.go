// Package log provides the leveled logging backend shared by the CLI,
// built on the go-logging package.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/op/go-logging.v1"
)

const format = "%{time:15:04:05.000} %{level:.4s} %{module}: %{message}"

// Backend fans per-module loggers out of a single leveled writer.
type Backend struct {
	leveled logging.LeveledBackend
}

// New creates a Backend writing to w at the given level. An empty level
// defaults to NOTICE so normal runs stay quiet.
func New(w io.Writer, level string) (*Backend, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	base := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(base, logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	return &Backend{leveled: leveled}, nil
}

// Discard returns a Backend that swallows everything; handy in tests.
func Discard() *Backend {
	b, _ := New(io.Discard, "critical")
	return b
}

// GetLogger returns the logger for a module, bound to this backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b.leveled)
	return l
}

func parseLevel(s string) (logging.Level, error) {
	if s == "" {
		return logging.NOTICE, nil
	}
	lvl, err := logging.LogLevel(strings.ToUpper(s))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}
