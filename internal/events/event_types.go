package events

import (
	"time"

	"github.com/deskops/incident-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIncidentCreated      EventType = "incident_created"
	EventIncidentTransitioned EventType = "incident_transitioned"
	EventCommandRejected      EventType = "incident_command_rejected"
	EventIncidentDeleted      EventType = "incident_deleted"
	EventIncidentsImported    EventType = "incidents_imported"
	EventIncidentsReset       EventType = "incidents_reset"
)

// Event represents a domain event emitted by the incident service.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	IncidentID *int        `json:"incident_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload,omitempty"`
}

// IncidentCreatedPayload payload.
type IncidentCreatedPayload struct {
	Category domain.Category `json:"category"`
	Priority domain.Priority `json:"priority"`
	Name     string          `json:"name"`
}

// IncidentTransitionedPayload payload.
type IncidentTransitionedPayload struct {
	Action    domain.Action `json:"action"`
	FromState domain.State  `json:"from_state"`
	ToState   domain.State  `json:"to_state"`
	Owner     string        `json:"owner,omitempty"`
	Note      string        `json:"note"`
}

// CommandRejectedPayload payload.
type CommandRejectedPayload struct {
	Action domain.Action `json:"action"`
	State  domain.State  `json:"state"`
	Reason string        `json:"reason"`
}

// IncidentsImportedPayload payload.
type IncidentsImportedPayload struct {
	Count int `json:"count"`
}
