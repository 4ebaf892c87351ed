// Package logging builds the charm loggers used across the arcade.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options describe a logger. Zero values mean info level text output.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
	Prefix string
}

// Validate checks the level and format names.
func (o Options) Validate() error {
	_, err := o.level()
	if err != nil {
		return err
	}
	_, err = ParseFormat(o.Format)
	return err
}

func (o Options) level() (log.Level, error) {
	if o.Level == "" {
		return log.InfoLevel, nil
	}
	l, err := log.ParseLevel(o.Level)
	if err != nil {
		return l, fmt.Errorf("logging: %w", err)
	}
	return l, nil
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := opts.level()
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	}), nil
}

// ParseFormat maps a format name to a charm formatter. The empty string is
// text.
func ParseFormat(name string) (log.Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("logging: unknown format %q", name)
	}
}

// OpenFile creates a logger appending to path, creating parent directories as
// needed. The TUI logs here because stdout and stderr belong to the screen.
// The returned closer releases the file.
func OpenFile(path string, opts Options) (*log.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open log file: %w", err)
	}

	logger, err := New(f, opts)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
