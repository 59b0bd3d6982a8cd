package observability

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/deskops/incident-desk/internal/domain"
	"github.com/deskops/incident-desk/internal/events"
)

func TestMetricsCountLifecycleEvents(t *testing.T) {
	m := NewMetrics()
	d := events.NewInMemoryDispatcher()
	m.RegisterEventHandlers(d)

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, events.Event{
		Type:    events.EventIncidentTransitioned,
		Payload: events.IncidentTransitionedPayload{FromState: domain.StateNew, ToState: domain.StateInProgress},
	}))
	require.NoError(t, d.Publish(ctx, events.Event{
		Type:    events.EventIncidentTransitioned,
		Payload: events.IncidentTransitionedPayload{FromState: domain.StateNew, ToState: domain.StateInProgress},
	}))
	require.NoError(t, d.Publish(ctx, events.Event{
		Type:    events.EventCommandRejected,
		Payload: events.CommandRejectedPayload{Action: domain.ActionConfirm, State: domain.StateNew},
	}))

	snap := m.Snapshot()
	assert.Equal(t, map[string]int64{"NEW->IN_PROGRESS": 2}, snap.Transitions)
	assert.Equal(t, map[string]int64{"CONFIRM": 1}, snap.Rejections)

	snap.Transitions["NEW->IN_PROGRESS"] = 99
	assert.EqualValues(t, 2, m.Snapshot().Transitions["NEW->IN_PROGRESS"])
}

func TestNilMetricsIgnoresRecords(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, 0)
		m.RecordError("/", "GET", "NOT_FOUND")
		m.RecordHandlerFailures(events.EventIncidentCreated, 1)
		m.RegisterEventHandlers(events.NewInMemoryDispatcher())
	})
}

func TestRequestLoggerRecordsRoute(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/incidents/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/incidents/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	requests := m.Snapshot().Requests
	require.Len(t, requests, 1)
	for key, count := range requests {
		assert.Contains(t, key, "|GET|204")
		assert.EqualValues(t, 1, count)
	}
}

func TestEventErrorHandlerLogsAndCounts(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := NewMetrics()
	d := events.NewInMemoryDispatcher(events.WithErrorHandler(EventErrorHandler(zap.New(core), m)))
	d.Subscribe(events.EventIncidentDeleted, func(context.Context, events.Event) error { return errors.New("disk full") })
	d.Subscribe(events.EventIncidentDeleted, func(context.Context, events.Event) error { return errors.New("queue closed") })

	id := 7
	err := d.Publish(context.Background(), events.Event{ID: "evt-1", Type: events.EventIncidentDeleted, IncidentID: &id})
	require.Error(t, err)

	assert.Equal(t, map[string]int64{string(events.EventIncidentDeleted): 2}, m.Snapshot().HandlerFailures)
	entries := logs.FilterMessage("event handlers failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 2, fields["failures"])
	assert.EqualValues(t, 7, fields["incident_id"])
	assert.Equal(t, "evt-1", fields["event_id"])
}
