package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"
)

func TestNewIncident(t *testing.T) {
	inc, err := NewIncident(7, "caller", CategoryNetwork, PriorityLow, "vpn down", "reported")
	require.NoError(t, err)

	assert.Equal(t, 7, inc.ID())
	assert.Equal(t, "caller", inc.Caller())
	assert.Equal(t, CategoryNetwork, inc.Category())
	assert.Equal(t, PriorityLow, inc.Priority())
	assert.Equal(t, "vpn down", inc.Name())
	assert.Equal(t, StateNew, inc.State())
	assert.Empty(t, inc.Owner())
	assert.Equal(t, []string{"reported"}, inc.Notes())
}

func TestNewIncidentRejectsMissingFields(t *testing.T) {
	cases := map[string]func() (*Incident, error){
		"negative id":  func() (*Incident, error) { return NewIncident(-1, "c", CategoryInquiry, PriorityLow, "n", "w") },
		"caller":       func() (*Incident, error) { return NewIncident(0, "", CategoryInquiry, PriorityLow, "n", "w") },
		"category":     func() (*Incident, error) { return NewIncident(0, "c", "", PriorityLow, "n", "w") },
		"bad category": func() (*Incident, error) { return NewIncident(0, "c", "PRINTER", PriorityLow, "n", "w") },
		"priority":     func() (*Incident, error) { return NewIncident(0, "c", CategoryInquiry, "", "n", "w") },
		"name":         func() (*Incident, error) { return NewIncident(0, "c", CategoryInquiry, PriorityLow, "", "w") },
		"initial note": func() (*Incident, error) { return NewIncident(0, "c", CategoryInquiry, PriorityLow, "n", "") },
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			inc, err := build()
			assert.Nil(t, inc)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}

func TestNotesReturnsCopy(t *testing.T) {
	inc := newIncident(t)
	notes := inc.Notes()
	notes[0] = "tampered"
	assert.Equal(t, []string{"workNote"}, inc.Notes())
}

func TestWorkNotesText(t *testing.T) {
	inc := newIncident(t)
	require.NoError(t, inc.Update(investigate(t, "zmei", "looking")))
	assert.Equal(t, "workNote\n-------\nlooking\n-------\n", inc.WorkNotesText())
}

func TestToRecordWritesStateCodesOnly(t *testing.T) {
	onHold := driveTo(t, StateOnHold).ToRecord()
	require.NotNil(t, onHold.OnHoldReason)
	assert.Equal(t, "Awaiting Caller", *onHold.OnHoldReason)
	assert.Nil(t, onHold.ResolutionCode)
	assert.Nil(t, onHold.CancellationCode)
	assert.Equal(t, "On Hold", onHold.State)

	closed := driveTo(t, StateClosed).ToRecord()
	require.NotNil(t, closed.ResolutionCode)
	assert.Equal(t, "Permanently Solved", *closed.ResolutionCode)
	assert.Nil(t, closed.OnHoldReason)

	canceled := driveTo(t, StateCanceled).ToRecord()
	require.NotNil(t, canceled.CancellationCode)
	assert.Equal(t, "Duplicate", *canceled.CancellationCode)
	require.NotNil(t, canceled.Owner)
	assert.Equal(t, "zmei", *canceled.Owner)

	fresh := newIncident(t).ToRecord()
	assert.Nil(t, fresh.Owner)
	assert.Nil(t, fresh.ChangeRequest)
	assert.Equal(t, "Software", fresh.Category)
	assert.Equal(t, "High", fresh.Priority)
	assert.Equal(t, "New", fresh.State)
}

func TestRecordRoundTrip(t *testing.T) {
	awaitingChange := func(t *testing.T) *Incident {
		inc := driveTo(t, StateInProgress)
		require.NoError(t, inc.Update(hold(t, OnHoldAwaitingChange, "cr-42")))
		require.NoError(t, inc.Update(reopen(t, "cr merged")))
		return inc
	}

	incidents := map[string]*Incident{"change request": awaitingChange(t)}
	for _, state := range States {
		incidents[state.Label()] = driveTo(t, state)
	}

	for name, original := range incidents {
		t.Run(name, func(t *testing.T) {
			rebuilt, err := FromRecord(original.ToRecord())
			require.NoError(t, err)

			assert.Equal(t, original.ID(), rebuilt.ID())
			assert.Equal(t, original.Caller(), rebuilt.Caller())
			assert.Equal(t, original.Category(), rebuilt.Category())
			assert.Equal(t, original.Priority(), rebuilt.Priority())
			assert.Equal(t, original.Name(), rebuilt.Name())
			assert.Equal(t, original.State(), rebuilt.State())
			assert.Equal(t, original.Owner(), rebuilt.Owner())
			assert.Equal(t, original.ChangeRequest(), rebuilt.ChangeRequest())
			assert.Equal(t, original.Notes(), rebuilt.Notes())

			if diff := cmp.Diff(original.ToRecord(), rebuilt.ToRecord()); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromRecordValidation(t *testing.T) {
	valid := func() Record {
		return Record{
			ID:       3,
			Caller:   "caller",
			Category: "Database",
			State:    "Resolved",
			Priority: "Urgent",
			Name:     "db slow",
			Notes:    []string{"first"},
		}
	}
	bad := "Bogus"

	cases := map[string]func(r *Record){
		"negative id":      func(r *Record) { r.ID = -4 },
		"missing caller":   func(r *Record) { r.Caller = "" },
		"missing name":     func(r *Record) { r.Name = "" },
		"missing notes":    func(r *Record) { r.Notes = nil },
		"empty note":       func(r *Record) { r.Notes = []string{""} },
		"empty later note": func(r *Record) { r.Notes = []string{"first", ""} },
		"bad category":     func(r *Record) { r.Category = "Printer" },
		"bad priority":     func(r *Record) { r.Priority = "Whenever" },
		"bad state":        func(r *Record) { r.State = "Done" },
		"empty state":      func(r *Record) { r.State = "" },
		"bad hold reason":  func(r *Record) { r.OnHoldReason = &bad },
		"bad resolution":   func(r *Record) { r.ResolutionCode = &bad },
		"bad cancellation": func(r *Record) { r.CancellationCode = &bad },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rec := valid()
			mutate(&rec)
			_, err := FromRecord(rec)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}

	t.Run("absent expected code tolerated", func(t *testing.T) {
		inc, err := FromRecord(valid())
		require.NoError(t, err)
		assert.Equal(t, StateResolved, inc.State())
		assert.Empty(t, inc.ResolutionCode())
	})

	t.Run("code for another state accepted", func(t *testing.T) {
		rec := valid()
		reason := "Awaiting Vendor"
		rec.OnHoldReason = &reason
		inc, err := FromRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, OnHoldAwaitingVendor, inc.OnHoldReason())
		assert.Equal(t, StateResolved, inc.State())
	})

	t.Run("reconstructed incident keeps working", func(t *testing.T) {
		rec := valid()
		code := "Workaround"
		rec.ResolutionCode = &code
		inc, err := FromRecord(rec)
		require.NoError(t, err)
		require.NoError(t, inc.Update(confirm(t, "thanks")))
		assert.Equal(t, StateClosed, inc.State())
		assert.Equal(t, ResolutionWorkaround, inc.ResolutionCode())
		assert.Equal(t, []string{"first", "thanks"}, inc.Notes())
	})
}
