package domain

import (
	"fmt"

	apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"
)

// Category classifies the subject matter of an incident.
type Category string

const (
	CategoryInquiry  Category = "INQUIRY"
	CategorySoftware Category = "SOFTWARE"
	CategoryHardware Category = "HARDWARE"
	CategoryNetwork  Category = "NETWORK"
	CategoryDatabase Category = "DATABASE"
)

// Priority ranks incident urgency.
type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// State enumerates lifecycle states for incidents.
type State string

const (
	StateNew        State = "NEW"
	StateInProgress State = "IN_PROGRESS"
	StateOnHold     State = "ON_HOLD"
	StateResolved   State = "RESOLVED"
	StateClosed     State = "CLOSED"
	StateCanceled   State = "CANCELED"
)

// Action is the operator verb carried by a Command.
type Action string

const (
	ActionInvestigate Action = "INVESTIGATE"
	ActionHold        Action = "HOLD"
	ActionResolve     Action = "RESOLVE"
	ActionConfirm     Action = "CONFIRM"
	ActionReopen      Action = "REOPEN"
	ActionCancel      Action = "CANCEL"
)

// OnHoldReason explains why an incident is paused.
type OnHoldReason string

const (
	OnHoldAwaitingCaller OnHoldReason = "AWAITING_CALLER"
	OnHoldAwaitingChange OnHoldReason = "AWAITING_CHANGE"
	OnHoldAwaitingVendor OnHoldReason = "AWAITING_VENDOR"
)

// ResolutionCode classifies the outcome of a resolved incident.
type ResolutionCode string

const (
	ResolutionPermanentlySolved ResolutionCode = "PERMANENTLY_SOLVED"
	ResolutionWorkaround        ResolutionCode = "WORKAROUND"
	ResolutionNotSolved         ResolutionCode = "NOT_SOLVED"
	ResolutionCallerClosed      ResolutionCode = "CALLER_CLOSED"
)

// CancellationCode classifies why an incident was canceled.
type CancellationCode string

const (
	CancellationDuplicate     CancellationCode = "DUPLICATE"
	CancellationUnnecessary   CancellationCode = "UNNECESSARY"
	CancellationNotAnIncident CancellationCode = "NOT_AN_INCIDENT"
)

// Enum values, in canonical order.
var (
	Categories        = []Category{CategoryInquiry, CategorySoftware, CategoryHardware, CategoryNetwork, CategoryDatabase}
	Priorities        = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	States            = []State{StateNew, StateInProgress, StateOnHold, StateResolved, StateClosed, StateCanceled}
	Actions           = []Action{ActionInvestigate, ActionHold, ActionResolve, ActionConfirm, ActionReopen, ActionCancel}
	OnHoldReasons     = []OnHoldReason{OnHoldAwaitingCaller, OnHoldAwaitingChange, OnHoldAwaitingVendor}
	ResolutionCodes   = []ResolutionCode{ResolutionPermanentlySolved, ResolutionWorkaround, ResolutionNotSolved, ResolutionCallerClosed}
	CancellationCodes = []CancellationCode{CancellationDuplicate, CancellationUnnecessary, CancellationNotAnIncident}
)

var categoryLabels = map[Category]string{
	CategoryInquiry:  "Inquiry",
	CategorySoftware: "Software",
	CategoryHardware: "Hardware",
	CategoryNetwork:  "Network",
	CategoryDatabase: "Database",
}

var priorityLabels = map[Priority]string{
	PriorityUrgent: "Urgent",
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

var stateLabels = map[State]string{
	StateNew:        "New",
	StateInProgress: "In Progress",
	StateOnHold:     "On Hold",
	StateResolved:   "Resolved",
	StateClosed:     "Closed",
	StateCanceled:   "Canceled",
}

var actionLabels = map[Action]string{
	ActionInvestigate: "Investigate",
	ActionHold:        "Hold",
	ActionResolve:     "Resolve",
	ActionConfirm:     "Confirm",
	ActionReopen:      "Reopen",
	ActionCancel:      "Cancel",
}

var onHoldLabels = map[OnHoldReason]string{
	OnHoldAwaitingCaller: "Awaiting Caller",
	OnHoldAwaitingChange: "Awaiting Change",
	OnHoldAwaitingVendor: "Awaiting Vendor",
}

var resolutionLabels = map[ResolutionCode]string{
	ResolutionPermanentlySolved: "Permanently Solved",
	ResolutionWorkaround:        "Workaround",
	ResolutionNotSolved:         "Not Solved",
	ResolutionCallerClosed:      "Caller Closed",
}

var cancellationLabels = map[CancellationCode]string{
	CancellationDuplicate:     "Duplicate",
	CancellationUnnecessary:   "Unnecessary",
	CancellationNotAnIncident: "Not an Incident",
}

// Label returns the display label, or "" for an unknown value.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Valid reports whether c is a known Category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (p Priority) Label() string {
	return priorityLabels[p]
}

func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

func (s State) Label() string {
	return stateLabels[s]
}

func (s State) Valid() bool {
	_, ok := stateLabels[s]
	return ok
}

func (a Action) Label() string {
	return actionLabels[a]
}

func (a Action) Valid() bool {
	_, ok := actionLabels[a]
	return ok
}

func (r OnHoldReason) Label() string {
	return onHoldLabels[r]
}

func (r OnHoldReason) Valid() bool {
	_, ok := onHoldLabels[r]
	return ok
}

func (r ResolutionCode) Label() string {
	return resolutionLabels[r]
}

func (r ResolutionCode) Valid() bool {
	_, ok := resolutionLabels[r]
	return ok
}

func (c CancellationCode) Label() string {
	return cancellationLabels[c]
}

func (c CancellationCode) Valid() bool {
	_, ok := cancellationLabels[c]
	return ok
}

// ParseCategory resolves a display label such as "Software".
func ParseCategory(label string) (Category, error) {
	return parseLabel("category", label, categoryLabels)
}

// ParsePriority resolves a display label such as "High".
func ParsePriority(label string) (Priority, error) {
	return parseLabel("priority", label, priorityLabels)
}

// ParseState resolves a display label such as "In Progress".
func ParseState(label string) (State, error) {
	return parseLabel("state", label, stateLabels)
}

// ParseAction accepts either the tag ("INVESTIGATE") or the label ("Investigate").
func ParseAction(value string) (Action, error) {
	if a := Action(value); a.Valid() {
		return a, nil
	}
	return parseLabel("action", value, actionLabels)
}

// ParseOnHoldReason resolves a display label such as "Awaiting Change".
func ParseOnHoldReason(label string) (OnHoldReason, error) {
	return parseLabel("on-hold reason", label, onHoldLabels)
}

// ParseResolutionCode resolves a display label such as "Workaround".
func ParseResolutionCode(label string) (ResolutionCode, error) {
	return parseLabel("resolution code", label, resolutionLabels)
}

// ParseCancellationCode resolves a display label such as "Not an Incident".
func ParseCancellationCode(label string) (CancellationCode, error) {
	return parseLabel("cancellation code", label, cancellationLabels)
}

func parseLabel[T ~string](kind, label string, labels map[T]string) (T, error) {
	for value, candidate := range labels {
		if candidate == label {
			return value, nil
		}
	}
	var zero T
	return zero, apperrors.NewInvalidArgument(fmt.Sprintf("unknown %s %q", kind, label), map[string]any{kind: label})
}
