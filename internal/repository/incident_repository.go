package repository

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/deskops/incident-desk/internal/domain"
	apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"
)

// IncidentRepository owns the incidents of one desk and hands out their ids.
// Implementations are not safe for concurrent use.
type IncidentRepository interface {
	Add(caller string, category domain.Category, priority domain.Priority, name, note string) (int, error)
	BulkLoad(records []domain.Record) error
	Get(id int) (*domain.Incident, bool)
	ListAll() []*domain.Incident
	ListByCategory(category domain.Category) ([]*domain.Incident, error)
	Dispatch(id int, cmd domain.Command) error
	DeleteByID(id int)
	Reset()
}

type incidentRepository struct {
	incidents []*domain.Incident
	byID      map[int]*domain.Incident
	nextID    int
}

// NewIncidentRepository instantiates an empty repository whose first id is 0.
func NewIncidentRepository() IncidentRepository {
	return &incidentRepository{byID: make(map[int]*domain.Incident)}
}

func (r *incidentRepository) Add(caller string, category domain.Category, priority domain.Priority, name, note string) (int, error) {
	incident, err := domain.NewIncident(r.nextID, caller, category, priority, name, note)
	if err != nil {
		return 0, err
	}
	r.nextID++
	r.store(incident)
	return incident.ID(), nil
}

// BulkLoad rebuilds every record before committing any of them. A single bad
// record rejects the whole batch and the repository is left as it was.
func (r *incidentRepository) BulkLoad(records []domain.Record) error {
	staged := make([]*domain.Incident, 0, len(records))
	seen := make(map[int]struct{}, len(records))
	var errs error

	for i, rec := range records {
		incident, err := domain.FromRecord(rec)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if _, dup := seen[incident.ID()]; dup {
			errs = multierr.Append(errs, fmt.Errorf("record %d: duplicate incident id %d in batch", i, incident.ID()))
			continue
		}
		if _, exists := r.byID[incident.ID()]; exists {
			errs = multierr.Append(errs, fmt.Errorf("record %d: incident id %d already loaded", i, incident.ID()))
			continue
		}
		seen[incident.ID()] = struct{}{}
		staged = append(staged, incident)
	}

	if errs != nil {
		return &apperrors.DomainError{
			Code:       apperrors.CodeInvalidArgument,
			Message:    fmt.Sprintf("bulk load rejected: %d of %d records invalid", len(multierr.Errors(errs)), len(records)),
			HTTPStatus: apperrors.ErrInvalidArgument.HTTPStatus,
			Details:    map[string]any{"failures": errorStrings(errs)},
			Err:        errs,
		}
	}

	for _, incident := range staged {
		r.store(incident)
		if incident.ID() >= r.nextID {
			r.nextID = incident.ID() + 1
		}
	}
	return nil
}

func (r *incidentRepository) Get(id int) (*domain.Incident, bool) {
	incident, ok := r.byID[id]
	return incident, ok
}

func (r *incidentRepository) ListAll() []*domain.Incident {
	return append([]*domain.Incident{}, r.incidents...)
}

func (r *incidentRepository) ListByCategory(category domain.Category) ([]*domain.Incident, error) {
	if !category.Valid() {
		return nil, apperrors.NewInvalidArgument("category is required", map[string]any{"category": string(category)})
	}
	result := []*domain.Incident{}
	for _, incident := range r.incidents {
		if incident.Category() == category {
			result = append(result, incident)
		}
	}
	return result, nil
}

// Dispatch is a no-op for unknown ids.
func (r *incidentRepository) Dispatch(id int, cmd domain.Command) error {
	incident, ok := r.byID[id]
	if !ok {
		return nil
	}
	return incident.Update(cmd)
}

func (r *incidentRepository) DeleteByID(id int) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	for i, incident := range r.incidents {
		if incident.ID() == id {
			r.incidents = append(r.incidents[:i], r.incidents[i+1:]...)
			return
		}
	}
}

func (r *incidentRepository) Reset() {
	r.incidents = nil
	r.byID = make(map[int]*domain.Incident)
	r.nextID = 0
}

func (r *incidentRepository) store(incident *domain.Incident) {
	r.incidents = append(r.incidents, incident)
	r.byID[incident.ID()] = incident
}

func errorStrings(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
