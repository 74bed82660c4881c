// Package sinks provides the standard logging sink implementations.
package sinks

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/modu-apps/cell-eater/logging"
)

// ConsoleSink writes one human-readable line per event.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{out: os.Stdout}
}

func NewConsoleSinkTo(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

func (s *ConsoleSink) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.out, "%s %-5s frame=%d %s actor=%s payload=%v\n",
		event.Time.Format("15:04:05.000"),
		severityLabel(event.Severity),
		event.Frame,
		event.Type,
		event.Actor.ID,
		event.Payload,
	)
	return err
}

func (s *ConsoleSink) Close(context.Context) error { return nil }

func severityLabel(sev logging.Severity) string {
	switch sev {
	case logging.SeverityDebug:
		return "DEBUG"
	case logging.SeverityInfo:
		return "INFO"
	case logging.SeverityWarn:
		return "WARN"
	case logging.SeverityError:
		return "ERROR"
	default:
		return "?"
	}
}
