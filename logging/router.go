package logging

import (
	"context"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Sink receives events the router dispatches.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

// NamedSink pairs a sink with its config name.
type NamedSink struct {
	Name string
	Sink Sink
}

// Router buffers published events and delivers them to sinks on a dedicated
// goroutine. Publish never blocks: when the queue is full the event is
// dropped and counted.
type Router struct {
	queue       chan Event
	sinks       []NamedSink
	minSeverity Severity
	fallback    *log.Logger
	closed      atomic.Bool
	wg          sync.WaitGroup

	eventsTotal  atomic.Uint64
	droppedTotal atomic.Uint64
}

// RouterStats reports delivery counters for diagnostics.
type RouterStats struct {
	EventsTotal  uint64
	DroppedTotal uint64
}

// NewRouter builds a router over the sinks enabled by the config and starts
// its dispatch goroutine.
func NewRouter(cfg Config, namedSinks []NamedSink) *Router {
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 512
	}
	enabled := make([]NamedSink, 0, len(namedSinks))
	for _, ns := range namedSinks {
		if ns.Sink == nil {
			continue
		}
		if len(cfg.EnabledSinks) > 0 && !cfg.HasSink(ns.Name) {
			continue
		}
		enabled = append(enabled, ns)
	}

	r := &Router{
		queue:       make(chan Event, bufferSize),
		sinks:       enabled,
		minSeverity: cfg.MinimumSeverity,
		fallback:    log.New(os.Stderr, "[logging] ", log.LstdFlags),
	}
	r.wg.Add(1)
	go r.dispatch()
	return r
}

// Publish enqueues an event, stamping the time if the caller left it zero.
func (r *Router) Publish(_ context.Context, event Event) {
	if r == nil || r.closed.Load() {
		return
	}
	if event.Severity < r.minSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	select {
	case r.queue <- event:
		r.eventsTotal.Add(1)
	default:
		r.droppedTotal.Add(1)
	}
}

// Stats returns the delivery counters.
func (r *Router) Stats() RouterStats {
	return RouterStats{
		EventsTotal:  r.eventsTotal.Load(),
		DroppedTotal: r.droppedTotal.Load(),
	}
}

// Close drains the queue and closes every sink.
func (r *Router) Close(ctx context.Context) error {
	if r == nil || !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(r.queue)
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	var firstErr error
	for _, ns := range r.sinks {
		if err := ns.Sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) dispatch() {
	defer r.wg.Done()
	for event := range r.queue {
		for _, ns := range r.sinks {
			if err := ns.Sink.Write(event); err != nil {
				r.fallback.Printf("sink %s write failed: %v", ns.Name, err)
			}
		}
	}
}
