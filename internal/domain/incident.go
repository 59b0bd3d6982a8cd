package domain

import (
	"strings"

	apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"
)

// lifecycle is shared by every incident; the table is read-only.
var lifecycle = NewStateMachine()

// Lifecycle returns the state machine incidents are driven by.
func Lifecycle() *StateMachine {
	return lifecycle
}

// Incident is a tracked support ticket. Identity and descriptive fields are
// fixed at creation; state and codes change only through Update.
type Incident struct {
	id               int
	caller           string
	category         Category
	priority         Priority
	name             string
	state            State
	owner            string
	onHoldReason     OnHoldReason
	resolutionCode   ResolutionCode
	cancellationCode CancellationCode
	changeRequest    string
	notes            []string
}

// NewIncident creates an incident in the New state whose note log starts
// with initialNote.
func NewIncident(id int, caller string, category Category, priority Priority, name, initialNote string) (*Incident, error) {
	switch {
	case id < 0:
		return nil, apperrors.NewInvalidArgument("incident id must be non-negative", map[string]any{"id": id})
	case caller == "":
		return nil, missingField("caller")
	case !category.Valid():
		return nil, missingField("category")
	case !priority.Valid():
		return nil, missingField("priority")
	case name == "":
		return nil, missingField("name")
	case initialNote == "":
		return nil, missingField("note")
	}

	return &Incident{
		id:       id,
		caller:   caller,
		category: category,
		priority: priority,
		name:     name,
		state:    StateNew,
		notes:    []string{initialNote},
	}, nil
}

func missingField(field string) error {
	return apperrors.NewInvalidArgument(field+" is required", map[string]any{"field": field})
}

// Update applies cmd through the lifecycle table.
func (i *Incident) Update(cmd Command) error {
	return lifecycle.Apply(i, cmd)
}

func (i *Incident) ID() int                            { return i.id }
func (i *Incident) Caller() string                     { return i.caller }
func (i *Incident) Category() Category                 { return i.category }
func (i *Incident) Priority() Priority                 { return i.priority }
func (i *Incident) Name() string                       { return i.name }
func (i *Incident) State() State                       { return i.state }
func (i *Incident) Owner() string                      { return i.owner }
func (i *Incident) OnHoldReason() OnHoldReason         { return i.onHoldReason }
func (i *Incident) ResolutionCode() ResolutionCode     { return i.resolutionCode }
func (i *Incident) CancellationCode() CancellationCode { return i.cancellationCode }
func (i *Incident) ChangeRequest() string              { return i.changeRequest }

// Notes returns a copy of the work note log, oldest first.
func (i *Incident) Notes() []string {
	return append([]string(nil), i.notes...)
}

// AllowedActions lists the commands the incident currently accepts.
func (i *Incident) AllowedActions() []Action {
	return lifecycle.AllowedActions(i.state)
}

// WorkNotesText renders the note log for display, each note followed by a
// separator line.
func (i *Incident) WorkNotesText() string {
	var b strings.Builder
	for _, note := range i.notes {
		b.WriteString(note)
		b.WriteString("\n-------\n")
	}
	return b.String()
}
