package domain

import apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"

// Record is the flat representation exchanged with persistence codecs.
// Enum fields carry display labels.
type Record struct {
	ID               int      `json:"id" yaml:"id"`
	Caller           string   `json:"caller" yaml:"caller"`
	Category         string   `json:"category" yaml:"category"`
	State            string   `json:"state" yaml:"state"`
	Priority         string   `json:"priority" yaml:"priority"`
	Owner            *string  `json:"owner,omitempty" yaml:"owner,omitempty"`
	Name             string   `json:"name" yaml:"name"`
	OnHoldReason     *string  `json:"on_hold_reason,omitempty" yaml:"on_hold_reason,omitempty"`
	ResolutionCode   *string  `json:"resolution_code,omitempty" yaml:"resolution_code,omitempty"`
	CancellationCode *string  `json:"cancellation_code,omitempty" yaml:"cancellation_code,omitempty"`
	ChangeRequest    *string  `json:"change_request,omitempty" yaml:"change_request,omitempty"`
	Notes            []string `json:"notes" yaml:"notes"`
}

// ToRecord exports the incident. Codes are only written for the states they
// belong to.
func (i *Incident) ToRecord() Record {
	rec := Record{
		ID:            i.id,
		Caller:        i.caller,
		Category:      i.category.Label(),
		State:         i.state.Label(),
		Priority:      i.priority.Label(),
		Owner:         optional(i.owner),
		Name:          i.name,
		ChangeRequest: optional(i.changeRequest),
		Notes:         append([]string(nil), i.notes...),
	}

	switch i.state {
	case StateOnHold:
		rec.OnHoldReason = optional(i.onHoldReason.Label())
	case StateResolved, StateClosed:
		rec.ResolutionCode = optional(i.resolutionCode.Label())
	case StateCanceled:
		rec.CancellationCode = optional(i.cancellationCode.Label())
	}
	return rec
}

// FromRecord rebuilds an incident in whatever state the record carries.
// Required labels must parse; optional codes may be absent and are not
// cross-checked against the state.
func FromRecord(rec Record) (*Incident, error) {
	switch {
	case rec.ID < 0:
		return nil, apperrors.NewInvalidArgument("incident id must be non-negative", map[string]any{"id": rec.ID})
	case rec.Caller == "":
		return nil, missingField("caller")
	case rec.Name == "":
		return nil, missingField("name")
	case len(rec.Notes) == 0:
		return nil, missingField("notes")
	}
	for i, note := range rec.Notes {
		if note == "" {
			return nil, apperrors.NewInvalidArgument("notes must not be empty", map[string]any{"field": "notes", "index": i})
		}
	}

	category, err := ParseCategory(rec.Category)
	if err != nil {
		return nil, err
	}
	priority, err := ParsePriority(rec.Priority)
	if err != nil {
		return nil, err
	}
	state, err := ParseState(rec.State)
	if err != nil {
		return nil, err
	}

	inc := &Incident{
		id:            rec.ID,
		caller:        rec.Caller,
		category:      category,
		priority:      priority,
		name:          rec.Name,
		state:         state,
		owner:         deref(rec.Owner),
		changeRequest: deref(rec.ChangeRequest),
		notes:         append([]string(nil), rec.Notes...),
	}

	if label := deref(rec.OnHoldReason); label != "" {
		if inc.onHoldReason, err = ParseOnHoldReason(label); err != nil {
			return nil, err
		}
	}
	if label := deref(rec.ResolutionCode); label != "" {
		if inc.resolutionCode, err = ParseResolutionCode(label); err != nil {
			return nil, err
		}
	}
	if label := deref(rec.CancellationCode); label != "" {
		if inc.cancellationCode, err = ParseCancellationCode(label); err != nil {
			return nil, err
		}
	}
	return inc, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
