// Package logging carries structured gameplay and lifecycle events from the
// simulation to configurable sinks. The sim core only ever sees the
// Publisher interface; routing, buffering, and encoding stay out here so the
// frame step never blocks on I/O.
package logging

import (
	"context"
	"time"
)

type EventType string

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

type EntityKind string

const (
	EntityKindUnknown EntityKind = "unknown"
	EntityKindClient  EntityKind = "client"
	EntityKindCell    EntityKind = "cell"
	EntityKindFood    EntityKind = "food"
	EntityKindRoom    EntityKind = "room"
)

const (
	CategoryGameplay   = "gameplay"
	CategoryLifecycle  = "lifecycle"
	CategorySimulation = "simulation"
)

// Event is one structured log record.
type Event struct {
	Type     EventType      `json:"type"`
	Frame    uint64         `json:"frame"`
	Time     time.Time      `json:"time"`
	Actor    EntityRef      `json:"actor"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// EntityRef identifies the entity an event is about.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// Publisher accepts events for delivery.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// NopPublisher returns a publisher that drops everything.
func NopPublisher() Publisher {
	return nopPublisher{}
}

type fieldPublisher struct {
	next   Publisher
	fields map[string]any
}

func (p *fieldPublisher) Publish(ctx context.Context, event Event) {
	if p.next == nil {
		return
	}
	if len(p.fields) > 0 {
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(p.fields))
		} else {
			copied := make(map[string]any, len(event.Extra)+len(p.fields))
			for k, v := range event.Extra {
				copied[k] = v
			}
			event.Extra = copied
		}
		for k, v := range p.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}
	p.next.Publish(ctx, event)
}

// WithFields returns a publisher that stamps the given fields onto every
// event's Extra map without overwriting event-provided keys.
func WithFields(p Publisher, fields map[string]any) Publisher {
	if p == nil {
		return NopPublisher()
	}
	if len(fields) == 0 {
		return p
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &fieldPublisher{next: p, fields: copied}
}
