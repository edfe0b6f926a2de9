// Package logx builds the JSON line loggers shared by the server, the migration
// runner and the portal controllers.
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
}

// New returns a logger writing one JSON object per line to w, stamping "ts" in loc.
func New(w io.Writer, loc *time.Location) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	return zerolog.New(w).Hook(tsHook{loc: loc})
}

// Stdout is New(os.Stdout, loc).
func Stdout(loc *time.Location) zerolog.Logger {
	return New(os.Stdout, loc)
}

// Component returns a child logger tagged with component.
func Component(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

type tsHook struct {
	loc *time.Location
}

func (h tsHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().In(h.loc).Format(time.RFC3339Nano))
}
