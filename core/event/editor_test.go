package event

import (
	"context"
	"errors"
	"testing"

	"github.com/ucvirtual/horario/core"
)

type repoStub struct {
	events    []Event
	nextID    int
	createErr error
	updateErr error
}

func (r *repoStub) ListEvents(ctx context.Context) ([]Event, error) {
	return append([]Event(nil), r.events...), nil
}

func (r *repoStub) GetEvent(ctx context.Context, id int) (Event, error) {
	for _, ev := range r.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return Event{}, core.ErrNotFound
}

func (r *repoStub) CreateEvent(ctx context.Context, d Draft) (Event, error) {
	if r.createErr != nil {
		return Event{}, r.createErr
	}
	r.nextID++
	ev := Event{ID: r.nextID, Title: d.Title, Description: d.Description,
		Date: d.Date, Start: d.Start, End: d.End, Active: d.Active}
	r.events = append(r.events, ev)
	return ev, nil
}

func (r *repoStub) UpdateEvent(ctx context.Context, id int, d Draft) (Event, error) {
	if r.updateErr != nil {
		return Event{}, r.updateErr
	}
	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].Title = d.Title
			r.events[i].Description = d.Description
			return r.events[i], nil
		}
	}
	return Event{}, core.ErrNotFound
}

func (r *repoStub) DeleteEvent(ctx context.Context, id int) error {
	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func TestEditorCreateFlow(t *testing.T) {
	repo := &repoStub{}
	e := NewEditor(NewService(repo))

	if err := e.Begin(nil); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if e.State() != Editing {
		t.Fatalf("state = %s, want editing", e.State())
	}
	if !e.Draft().Active {
		t.Error("new draft should default to active")
	}

	if err := e.Begin(nil); !errors.Is(err, ErrEditInProgress) {
		t.Errorf("second Begin() error = %v, want %v", err, ErrEditInProgress)
	}

	if err := e.Change(Draft{Title: "Semana cultural", Date: "2026-09-07", Active: true}); err != nil {
		t.Fatalf("Change() failed: %v", err)
	}
	ev, err := e.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if ev.ID != 1 || ev.Title != "Semana cultural" {
		t.Errorf("event = %+v", ev)
	}
	if e.State() != Idle {
		t.Errorf("state after submit = %s, want idle", e.State())
	}
}

func TestEditorUpdateFlow(t *testing.T) {
	repo := &repoStub{events: []Event{{ID: 4, Title: "Feria", Active: true}}, nextID: 4}
	e := NewEditor(NewService(repo))

	orig, _ := repo.GetEvent(context.Background(), 4)
	if err := e.Begin(&orig); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if e.Draft().Title != "Feria" {
		t.Errorf("draft seeded with %q, want original title", e.Draft().Title)
	}

	d := e.Draft()
	d.Title = "Feria de ciencias"
	_ = e.Change(d)
	ev, err := e.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if ev.ID != 4 || ev.Title != "Feria de ciencias" {
		t.Errorf("event = %+v", ev)
	}
}

func TestEditorSubmitFailures(t *testing.T) {
	t.Run("local validation", func(t *testing.T) {
		e := NewEditor(NewService(&repoStub{}))
		_ = e.Begin(nil)
		_ = e.Change(Draft{Title: ""})

		_, err := e.Submit(context.Background())
		if err == nil {
			t.Fatal("Submit() accepted an empty title")
		}
		if e.State() != Failed {
			t.Fatalf("state = %s, want failed", e.State())
		}
		if _, ok := e.FieldErrors()["nombre"]; !ok {
			t.Errorf("field errors = %v, want nombre", e.FieldErrors())
		}

		// changing the draft clears the failure
		_ = e.Change(Draft{Title: "Charla", Active: true})
		if e.State() != Editing || e.FieldErrors() != nil {
			t.Errorf("state = %s errs = %v after change", e.State(), e.FieldErrors())
		}
	})

	t.Run("server validation", func(t *testing.T) {
		repo := &repoStub{createErr: core.NewValidationError(nil,
			core.FieldError{Field: "fecha", Error: "event date already taken"})}
		e := NewEditor(NewService(repo))
		_ = e.Begin(nil)
		_ = e.Change(Draft{Title: "Charla", Date: "2026-09-07", Active: true})

		if _, err := e.Submit(context.Background()); err == nil {
			t.Fatal("Submit() swallowed the server rejection")
		}
		if e.State() != Failed {
			t.Fatalf("state = %s, want failed", e.State())
		}
		if _, ok := e.FieldErrors()["fecha"]; !ok {
			t.Errorf("field errors = %v, want fecha", e.FieldErrors())
		}
	})

	t.Run("network failure returns to editing", func(t *testing.T) {
		repo := &repoStub{createErr: core.ErrNetworkUnavailable}
		e := NewEditor(NewService(repo))
		_ = e.Begin(nil)
		_ = e.Change(Draft{Title: "Charla", Active: true})

		if _, err := e.Submit(context.Background()); !errors.Is(err, core.ErrNetworkUnavailable) {
			t.Fatalf("Submit() error = %v, want %v", err, core.ErrNetworkUnavailable)
		}
		if e.State() != Editing {
			t.Errorf("state = %s, want editing for retry", e.State())
		}
		if e.Draft().Title != "Charla" {
			t.Error("draft lost on transient failure")
		}
	})
}

func TestEditorCancel(t *testing.T) {
	e := NewEditor(NewService(&repoStub{}))
	_ = e.Begin(nil)
	_ = e.Change(Draft{Title: "Charla"})

	e.Cancel()
	if e.State() != Idle {
		t.Fatalf("state = %s, want idle", e.State())
	}
	if e.Draft().Title != "" {
		t.Error("draft survived cancel")
	}

	if err := e.Begin(nil); err != nil {
		t.Errorf("Begin() after cancel failed: %v", err)
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{name: "missing title", draft: Draft{}, field: "nombre"},
		{name: "bad date", draft: Draft{Title: "x", Date: "07-09-2026"}, field: "fecha"},
		{name: "bad time", draft: Draft{Title: "x", Start: "25:00"}, field: "hora_inicio"},
		{name: "inverted times", draft: Draft{Title: "x", Start: "10:00", End: "08:00"}, field: "hora_cierre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			var vErr *core.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want validation error", err)
			}
			if _, ok := vErr.FieldMap()[tt.field]; !ok {
				t.Errorf("field errors = %v, want %q", vErr.FieldMap(), tt.field)
			}
		})
	}

	t.Run("truncates seconds", func(t *testing.T) {
		d := Draft{Title: "Charla", Start: "08:00:00", End: "10:30:00"}
		if err := d.Validate(); err != nil {
			t.Fatalf("Validate() failed: %v", err)
		}
		if d.Start != "08:00" || d.End != "10:30" {
			t.Errorf("times = %s-%s, want truncated to HH:mm", d.Start, d.End)
		}
	})
}
