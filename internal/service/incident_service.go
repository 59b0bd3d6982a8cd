package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/deskops/incident-desk/internal/domain"
	"github.com/deskops/incident-desk/internal/events"
	"github.com/deskops/incident-desk/internal/repository"
)

// IncidentService is the single entry point used by transports and tools.
// Like the repository it wraps, it is not safe for concurrent use; callers
// serialize access.
type IncidentService struct {
	incidents  repository.IncidentRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// IncidentDependencies bundles collaborators for the incident service.
type IncidentDependencies struct {
	Repo       repository.IncidentRepository
	Dispatcher events.Dispatcher
	Clock      func() time.Time
}

// RecordStore persists the flat incident records of a desk.
type RecordStore interface {
	Load(ctx context.Context) ([]domain.Record, error)
	Save(ctx context.Context, records []domain.Record) error
}

// Row is the tabular projection shown in incident lists.
type Row struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	State    string `json:"state"`
	Priority string `json:"priority"`
	Name     string `json:"name"`
}

// NewIncidentService constructs the service. A nil repository is replaced by
// an empty in-memory one.
func NewIncidentService(deps IncidentDependencies) *IncidentService {
	repo := deps.Repo
	if repo == nil {
		repo = repository.NewIncidentRepository()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &IncidentService{
		incidents:  repo,
		dispatcher: deps.Dispatcher,
		now:        clock,
	}
}

// Add opens a new incident and returns its id.
func (s *IncidentService) Add(caller string, category domain.Category, priority domain.Priority, name, note string) (int, error) {
	id, err := s.incidents.Add(caller, category, priority, name, note)
	if err != nil {
		return 0, err
	}
	s.publishEvent(events.Event{
		Type:       events.EventIncidentCreated,
		IncidentID: &id,
		Payload: events.IncidentCreatedPayload{
			Category: category,
			Priority: priority,
			Name:     name,
		},
	})
	return id, nil
}

// Get returns the incident with id, if any.
func (s *IncidentService) Get(id int) (*domain.Incident, bool) {
	return s.incidents.Get(id)
}

// ListAll returns one row per incident in insertion order.
func (s *IncidentService) ListAll() []Row {
	return toRows(s.incidents.ListAll())
}

// ListByCategory returns the rows of incidents in category.
func (s *IncidentService) ListByCategory(category domain.Category) ([]Row, error) {
	incidents, err := s.incidents.ListByCategory(category)
	if err != nil {
		return nil, err
	}
	return toRows(incidents), nil
}

// Dispatch runs cmd against incident id. Unknown ids are ignored.
func (s *IncidentService) Dispatch(id int, cmd domain.Command) error {
	incident, ok := s.incidents.Get(id)
	if !ok {
		return nil
	}
	from := incident.State()

	if err := s.incidents.Dispatch(id, cmd); err != nil {
		s.publishEvent(events.Event{
			Type:       events.EventCommandRejected,
			IncidentID: &id,
			Payload: events.CommandRejectedPayload{
				Action: cmd.Action(),
				State:  from,
				Reason: err.Error(),
			},
		})
		return err
	}

	s.publishEvent(events.Event{
		Type:       events.EventIncidentTransitioned,
		IncidentID: &id,
		Payload: events.IncidentTransitionedPayload{
			Action:    cmd.Action(),
			FromState: from,
			ToState:   incident.State(),
			Owner:     incident.Owner(),
			Note:      cmd.Note(),
		},
	})
	return nil
}

// Delete removes incident id. Unknown ids are ignored.
func (s *IncidentService) Delete(id int) {
	if _, ok := s.incidents.Get(id); !ok {
		return
	}
	s.incidents.DeleteByID(id)
	s.publishEvent(events.Event{Type: events.EventIncidentDeleted, IncidentID: &id})
}

// Reset discards every incident and restarts id allocation at 0.
func (s *IncidentService) Reset() {
	s.incidents.Reset()
	s.publishEvent(events.Event{Type: events.EventIncidentsReset})
}

// Import adds the records to the desk; either all of them load or none do.
func (s *IncidentService) Import(records []domain.Record) error {
	if err := s.incidents.BulkLoad(records); err != nil {
		return err
	}
	s.publishEvent(events.Event{
		Type:    events.EventIncidentsImported,
		Payload: events.IncidentsImportedPayload{Count: len(records)},
	})
	return nil
}

// Export returns every incident as a flat record, in listing order.
func (s *IncidentService) Export() []domain.Record {
	incidents := s.incidents.ListAll()
	records := make([]domain.Record, 0, len(incidents))
	for _, incident := range incidents {
		records = append(records, incident.ToRecord())
	}
	return records
}

// LoadFrom imports every record held by store.
func (s *IncidentService) LoadFrom(ctx context.Context, store RecordStore) error {
	records, err := store.Load(ctx)
	if err != nil {
		return err
	}
	return s.Import(records)
}

// SaveTo writes the full export to store.
func (s *IncidentService) SaveTo(ctx context.Context, store RecordStore) error {
	return store.Save(ctx, s.Export())
}

func (s *IncidentService) publishEvent(event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(context.Background(), event)
}

func toRows(incidents []*domain.Incident) []Row {
	rows := make([]Row, 0, len(incidents))
	for _, incident := range incidents {
		rows = append(rows, Row{
			ID:       incident.ID(),
			Category: incident.Category().Label(),
			State:    incident.State().Label(),
			Priority: incident.Priority().Label(),
			Name:     incident.Name(),
		})
	}
	return rows
}
