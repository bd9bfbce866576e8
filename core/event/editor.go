package event

import (
	"context"
	"errors"

	"github.com/ucvirtual/horario/core"
)

// EditorState is the editor's lifecycle; transitions are explicit instead of
// ad hoc boolean flags.
type EditorState int

const (
	Idle EditorState = iota
	Editing
	Submitting
	Failed
)

func (s EditorState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Failed:
		return "failed"
	}
	return "?"
}

var (
	ErrEditInProgress = errors.New("another edit is in progress")
	ErrNoEdit         = errors.New("no edit in progress")
)

// Editor is the single-editor state machine over one Event at a time:
// Idle → Editing → Submitting → Idle, with Failed holding field errors until
// the draft changes or the edit is cancelled.
type Editor struct {
	svc *Service

	state     EditorState
	eventID   int // 0 while creating
	draft     Draft
	fieldErrs map[string]string
}

func NewEditor(svc *Service) *Editor {
	return &Editor{svc: svc}
}

func (e *Editor) State() EditorState         { return e.state }
func (e *Editor) Draft() Draft               { return e.draft }
func (e *Editor) FieldErrors() map[string]string { return e.fieldErrs }

// Begin starts editing. Pass nil to create a new event, or an existing Event
// to modify it. Only one edit may be active.
func (e *Editor) Begin(ev *Event) error {
	if e.state != Idle {
		return ErrEditInProgress
	}
	if ev != nil {
		e.eventID = ev.ID
		e.draft = draftOf(*ev)
	} else {
		e.eventID = 0
		e.draft = Draft{Active: true}
	}
	e.state = Editing
	e.fieldErrs = nil
	return nil
}

// Change replaces the draft; clears a previous failure.
func (e *Editor) Change(d Draft) error {
	if e.state != Editing && e.state != Failed {
		return ErrNoEdit
	}
	e.draft = d
	e.state = Editing
	e.fieldErrs = nil
	return nil
}

// Submit validates and persists the draft. Validation failures (local or
// server-side) move the editor to Failed with per-field messages; any other
// failure returns to Editing so the user can retry.
func (e *Editor) Submit(ctx context.Context) (Event, error) {
	if e.state != Editing && e.state != Failed {
		return Event{}, ErrNoEdit
	}
	e.state = Submitting

	var ev Event
	var err error
	if e.eventID == 0 {
		ev, err = e.svc.Create(ctx, e.draft)
	} else {
		ev, err = e.svc.Update(ctx, e.eventID, e.draft)
	}
	if err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			e.state = Failed
			e.fieldErrs = vErr.FieldMap()
		} else {
			e.state = Editing
		}
		return Event{}, err
	}

	e.state = Idle
	e.draft = Draft{}
	e.fieldErrs = nil
	return ev, nil
}

func (e *Editor) Cancel() {
	if e.state == Submitting {
		// Submit owns the transition out of Submitting
		return
	}
	e.state = Idle
	e.draft = Draft{}
	e.fieldErrs = nil
}
