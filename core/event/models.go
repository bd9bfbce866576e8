package event

import (
	"github.com/ucvirtual/horario/core"
)

// Event is the canonical calendar event, normalized from the wire shape
// {nombre, descripcion, fecha, hora_inicio, hora_cierre, ...}.
type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
	Date        string `json:"fecha,omitempty"` // YYYY-MM-DD
	Start       string `json:"hora_inicio,omitempty"`
	End         string `json:"hora_cierre,omitempty"`
	Active      bool   `json:"active"`
	UserID      int    `json:"user_id"`
}

// Draft is the editable shape of an Event: what the editor form holds.
type Draft struct {
	Title       string `json:"nombre" validate:"required,max=120"`
	Description string `json:"descripcion" validate:"omitempty,max=500"`
	Date        string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Start       string `json:"hora_inicio" validate:"omitempty,hhmm"`
	End         string `json:"hora_cierre" validate:"omitempty,hhmm"`
	Active      bool   `json:"active"`
}

func (d *Draft) Validate() error {
	d.Title = core.CleanString(d.Title)
	d.Description = core.CleanString(d.Description)
	d.Start = core.CleanTime(d.Start)
	d.End = core.CleanTime(d.End)

	if err := core.TranslateError(core.Validate.Struct(d)); err != nil {
		return err
	}
	if d.Start != "" && d.End != "" && d.Start >= d.End {
		return core.NewValidationError(nil,
			core.FieldError{Field: "hora_cierre", Error: "must be after hora_inicio"})
	}
	return nil
}

func draftOf(ev Event) Draft {
	return Draft{
		Title:       ev.Title,
		Description: ev.Description,
		Date:        ev.Date,
		Start:       ev.Start,
		End:         ev.End,
		Active:      ev.Active,
	}
}
