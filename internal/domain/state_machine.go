package domain

import apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"

type transitionKey struct {
	from   State
	action Action
}

// effect mutates the incident's fields for an accepted transition. The note
// and the state change are applied by the machine itself.
type effect func(inc *Incident, cmd Command)

type transition struct {
	to    State
	apply effect
}

// StateMachine holds the incident lifecycle table. It is immutable after
// construction and safe to share.
type StateMachine struct {
	transitions map[transitionKey]transition
	// terminal states reject every action after running their hook.
	terminal map[State]effect
}

// NewStateMachine builds the incident lifecycle.
func NewStateMachine() *StateMachine {
	m := &StateMachine{
		transitions: make(map[transitionKey]transition),
		terminal:    make(map[State]effect),
	}

	m.on(StateNew, ActionInvestigate, StateInProgress, assignOwner)
	m.on(StateNew, ActionCancel, StateCanceled, setCancellation)

	m.on(StateInProgress, ActionHold, StateOnHold, setOnHold)
	m.on(StateInProgress, ActionResolve, StateResolved, setResolution)
	m.on(StateInProgress, ActionCancel, StateCanceled, setCancellation)

	m.on(StateOnHold, ActionReopen, StateInProgress, leaveHold)
	m.on(StateOnHold, ActionResolve, StateResolved, chain(setResolution, leaveHold))
	m.on(StateOnHold, ActionCancel, StateCanceled, chain(setCancellation, clearOnHold))

	m.on(StateResolved, ActionHold, StateOnHold, chain(clearResolution, setOnHold))
	m.on(StateResolved, ActionReopen, StateInProgress, clearResolution)
	m.on(StateResolved, ActionConfirm, StateClosed, nil)
	m.on(StateResolved, ActionCancel, StateCanceled, chain(clearResolution, setCancellation))

	m.on(StateClosed, ActionReopen, StateInProgress, clearResolution)

	// A canceled incident drops its owner on every attempt before refusing it.
	m.terminal[StateCanceled] = func(inc *Incident, _ Command) {
		inc.owner = ""
	}

	return m
}

func (m *StateMachine) on(from State, action Action, to State, apply effect) {
	m.transitions[transitionKey{from: from, action: action}] = transition{to: to, apply: apply}
}

// Next reports the state reached by applying action in from.
func (m *StateMachine) Next(from State, action Action) (State, bool) {
	if _, ok := m.terminal[from]; ok {
		return from, false
	}
	t, ok := m.transitions[transitionKey{from: from, action: action}]
	if !ok {
		return from, false
	}
	return t.to, true
}

// AllowedActions lists the actions accepted in state, in canonical order.
func (m *StateMachine) AllowedActions(state State) []Action {
	allowed := make([]Action, 0, len(Actions))
	for _, action := range Actions {
		if _, ok := m.Next(state, action); ok {
			allowed = append(allowed, action)
		}
	}
	return allowed
}

// Apply runs cmd against inc. A rejected command returns INVALID_TRANSITION
// and leaves inc unchanged, except for the hook of a terminal state.
func (m *StateMachine) Apply(inc *Incident, cmd Command) error {
	if hook, ok := m.terminal[inc.state]; ok {
		hook(inc, cmd)
		return apperrors.NewInvalidTransition(inc.state.Label(), string(cmd.Action()))
	}

	t, ok := m.transitions[transitionKey{from: inc.state, action: cmd.Action()}]
	if !ok {
		return apperrors.NewInvalidTransition(inc.state.Label(), string(cmd.Action()))
	}

	if t.apply != nil {
		t.apply(inc, cmd)
	}
	inc.notes = append(inc.notes, cmd.Note())
	inc.state = t.to
	return nil
}

func chain(effects ...effect) effect {
	return func(inc *Incident, cmd Command) {
		for _, e := range effects {
			e(inc, cmd)
		}
	}
}

func assignOwner(inc *Incident, cmd Command) {
	inc.owner = cmd.OwnerID()
}

func setOnHold(inc *Incident, cmd Command) {
	inc.onHoldReason = cmd.OnHoldReason()
}

func clearOnHold(inc *Incident, _ Command) {
	inc.onHoldReason = ""
}

// leaveHold records the change request when the hold was waiting on one.
func leaveHold(inc *Incident, cmd Command) {
	if inc.onHoldReason == OnHoldAwaitingChange {
		inc.changeRequest = cmd.Note()
	}
	inc.onHoldReason = ""
}

func setResolution(inc *Incident, cmd Command) {
	inc.resolutionCode = cmd.ResolutionCode()
}

func clearResolution(inc *Incident, _ Command) {
	inc.resolutionCode = ""
}

func setCancellation(inc *Incident, cmd Command) {
	inc.cancellationCode = cmd.CancellationCode()
}
