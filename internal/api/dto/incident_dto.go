package dto

import "github.com/deskops/incident-desk/internal/domain"

// CreateIncidentRequest payload. Category and priority are display labels.
type CreateIncidentRequest struct {
	Caller   string `json:"caller"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Name     string `json:"name"`
	Note     string `json:"note"`
}

// CommandRequest payload. Action accepts a tag or a label; the codes are
// display labels and only the one matching the action is read.
type CommandRequest struct {
	Action           string `json:"action"`
	OwnerID          string `json:"owner_id"`
	OnHoldReason     string `json:"on_hold_reason"`
	ResolutionCode   string `json:"resolution_code"`
	CancellationCode string `json:"cancellation_code"`
	Note             string `json:"note"`
}

// IncidentSummary is one row of an incident listing.
type IncidentSummary struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	State    string `json:"state"`
	Priority string `json:"priority"`
	Name     string `json:"name"`
}

// IncidentDetailResponse provides full incident info.
type IncidentDetailResponse struct {
	ID               int      `json:"id"`
	Caller           string   `json:"caller"`
	Category         string   `json:"category"`
	State            string   `json:"state"`
	Priority         string   `json:"priority"`
	Owner            string   `json:"owner,omitempty"`
	Name             string   `json:"name"`
	OnHoldReason     string   `json:"on_hold_reason,omitempty"`
	ResolutionCode   string   `json:"resolution_code,omitempty"`
	CancellationCode string   `json:"cancellation_code,omitempty"`
	ChangeRequest    string   `json:"change_request,omitempty"`
	Notes            []string `json:"notes"`
	WorkNotes        string   `json:"work_notes"`
	AllowedActions   []string `json:"allowed_actions"`
}

// ImportRequest carries exported records back in.
type ImportRequest struct {
	Incidents []domain.Record `json:"incidents"`
}
