package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/modu-apps/cell-eater/logging"
)

// JSONSink appends one JSON object per line to a file.
type JSONSink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

func NewJSONSink(path string) (*JSONSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sinks: open json log %s: %w", path, err)
	}
	return &JSONSink{file: file, enc: json.NewEncoder(file)}, nil
}

func (s *JSONSink) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(event)
}

func (s *JSONSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
