package observability

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/deskops/incident-desk/internal/events"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	transitions  map[string]int64
	rejections   map[string]int64
	handlerFails map[string]int64
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	Requests    map[string]int64 `json:"requests"`
	Errors      map[string]int64 `json:"errors"`
	Transitions map[string]int64 `json:"transitions"`
	Rejections  map[string]int64 `json:"rejections"`
	// HandlerFailures counts failed event handlers per event type.
	HandlerFailures map[string]int64 `json:"handler_failures"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		transitions:  make(map[string]int64),
		rejections:   make(map[string]int64),
		handlerFails: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordHandlerFailures adds n failed handlers for eventType.
func (m *Metrics) RecordHandlerFailures(eventType events.EventType, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlerFails[string(eventType)] += int64(n)
}

// RegisterEventHandlers counts lifecycle transitions and rejected commands.
func (m *Metrics) RegisterEventHandlers(d events.Dispatcher) {
	if m == nil || d == nil {
		return
	}
	d.Subscribe(events.EventIncidentTransitioned, func(_ context.Context, e events.Event) error {
		if p, ok := e.Payload.(events.IncidentTransitionedPayload); ok {
			m.increment(m.transitions, string(p.FromState)+"->"+string(p.ToState))
		}
		return nil
	})
	d.Subscribe(events.EventCommandRejected, func(_ context.Context, e events.Event) error {
		if p, ok := e.Payload.(events.CommandRejectedPayload); ok {
			m.increment(m.rejections, string(p.Action))
		}
		return nil
	})
}

// Snapshot copies the counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Requests:    copyCounts(m.requestCount),
		Errors:      copyCounts(m.errorCount),
		Transitions: copyCounts(m.transitions),
		Rejections:  copyCounts(m.rejections),

		HandlerFailures: copyCounts(m.handlerFails),
	}
}

func (m *Metrics) increment(counts map[string]int64, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts[key]++
}

func copyCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
