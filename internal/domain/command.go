package domain

import apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"

// Command is a validated request to move an incident through its lifecycle.
// Payload fields the action does not need are kept but never read by the
// state machine; when set they must still be known values.
type Command struct {
	action           Action
	ownerID          string
	onHoldReason     OnHoldReason
	resolutionCode   ResolutionCode
	cancellationCode CancellationCode
	note             string
}

// NewCommand validates the payload for action and returns a Command, or an
// INVALID_ARGUMENT error naming the first rule that failed.
func NewCommand(action Action, ownerID string, onHoldReason OnHoldReason, resolutionCode ResolutionCode, cancellationCode CancellationCode, note string) (Command, error) {
	switch {
	case !action.Valid():
		return Command{}, invalidCommand("action is required", "action")
	case action == ActionInvestigate && ownerID == "":
		return Command{}, invalidCommand("owner required to investigate", "owner_id")
	case action == ActionHold && onHoldReason == "":
		return Command{}, invalidCommand("on-hold reason required to hold", "on_hold_reason")
	case action == ActionResolve && resolutionCode == "":
		return Command{}, invalidCommand("resolution code required to resolve", "resolution_code")
	case action == ActionCancel && cancellationCode == "":
		return Command{}, invalidCommand("cancellation code required to cancel", "cancellation_code")
	case onHoldReason != "" && !onHoldReason.Valid():
		return Command{}, invalidCommand("unknown on-hold reason", "on_hold_reason")
	case resolutionCode != "" && !resolutionCode.Valid():
		return Command{}, invalidCommand("unknown resolution code", "resolution_code")
	case cancellationCode != "" && !cancellationCode.Valid():
		return Command{}, invalidCommand("unknown cancellation code", "cancellation_code")
	case note == "":
		return Command{}, invalidCommand("note is required", "note")
	}

	return Command{
		action:           action,
		ownerID:          ownerID,
		onHoldReason:     onHoldReason,
		resolutionCode:   resolutionCode,
		cancellationCode: cancellationCode,
		note:             note,
	}, nil
}

// CommandInput is a command spelled with display labels, as typed by an
// operator. Only the code belonging to the action is parsed.
type CommandInput struct {
	Action           string
	OwnerID          string
	OnHoldReason     string
	ResolutionCode   string
	CancellationCode string
	Note             string
}

// ParseCommand resolves the labels in in and validates the result with
// NewCommand.
func ParseCommand(in CommandInput) (Command, error) {
	action, err := ParseAction(in.Action)
	if err != nil {
		return Command{}, err
	}

	var (
		reason       OnHoldReason
		resolution   ResolutionCode
		cancellation CancellationCode
	)
	switch {
	case action == ActionHold && in.OnHoldReason != "":
		reason, err = ParseOnHoldReason(in.OnHoldReason)
	case action == ActionResolve && in.ResolutionCode != "":
		resolution, err = ParseResolutionCode(in.ResolutionCode)
	case action == ActionCancel && in.CancellationCode != "":
		cancellation, err = ParseCancellationCode(in.CancellationCode)
	}
	if err != nil {
		return Command{}, err
	}

	return NewCommand(action, in.OwnerID, reason, resolution, cancellation, in.Note)
}

func invalidCommand(message, field string) error {
	return apperrors.NewInvalidArgument(message, map[string]any{"field": field})
}

func (c Command) Action() Action                     { return c.action }
func (c Command) OwnerID() string                    { return c.ownerID }
func (c Command) OnHoldReason() OnHoldReason         { return c.onHoldReason }
func (c Command) ResolutionCode() ResolutionCode     { return c.resolutionCode }
func (c Command) CancellationCode() CancellationCode { return c.cancellationCode }
func (c Command) Note() string                       { return c.note }
