// Package logging builds the zerolog logger shared by the CLI and the
// catalog service.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// Output formats accepted by NewFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for a format other than text or json.
var ErrUnknownFormat = errors.New("unknown log format")

// ParseLevel maps a configured level name to a zerolog level. The empty
// string selects DefaultLevel.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		level = DefaultLevel
	}
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	if l == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("parsing log level %q: no level", level)
	}
	return l, nil
}

// New returns a logger writing human-readable lines to w at level.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(out).Level(l).With().Timestamp().Logger(), nil
}

// NewJSON returns a logger writing one JSON object per event to w.
func NewJSON(level string, w io.Writer) (zerolog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(w).Level(l).With().Timestamp().Logger(), nil
}

// NewFormat returns the logger for format: New for "" and text, NewJSON for
// json.
func NewFormat(format, level string, w io.Writer) (zerolog.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return New(level, w)
	case FormatJSON:
		return NewJSON(level, w)
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q (want text or json)", ErrUnknownFormat, format)
	}
}
