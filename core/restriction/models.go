package restriction

import (
	"github.com/ucvirtual/horario/core"
)

// TimeSlot is a weekly (day, start, end) availability window. Times are
// zero-padded "HH:mm" strings; start < end lexicographically is sufficient
// since both fall on the same day.
type TimeSlot struct {
	Day   core.Weekday `json:"dia_semana"`
	Start string       `json:"hora_inicio"`
	End   string       `json:"hora_fin"`
}

// Record is the canonical view of a teacher's restricción horaria, whichever
// wire shape it arrived in.
type Record struct {
	ID          int          `json:"id"`
	TeacherID   int          `json:"docente_id"`
	Day         core.Weekday `json:"dia_semana"`
	Start       string       `json:"hora_inicio"`
	End         string       `json:"hora_fin"`
	Available   bool         `json:"disponible"`
	Description string       `json:"descripcion,omitempty"`
	Active      bool         `json:"activa"`

	// ClientKey identifies an optimistic local insert until the server assigns
	// an id. Never sent on the wire.
	ClientKey string `json:"-"`
}

func (r Record) Slot() TimeSlot {
	return TimeSlot{Day: r.Day, Start: r.Start, End: r.End}
}

// NewRestriction contains information needed to create a new Record. The
// server assigns the id.
type NewRestriction struct {
	Day         core.Weekday `json:"dia_semana" validate:"required,weekday"`
	Start       string       `json:"hora_inicio" validate:"required,hhmm"`
	End         string       `json:"hora_fin" validate:"required,hhmm"`
	Available   bool         `json:"disponible"`
	Description string       `json:"descripcion,omitempty" validate:"omitempty,max=255"`
}

func (nr *NewRestriction) Validate() error {
	nr.Start = core.CleanTime(nr.Start)
	nr.End = core.CleanTime(nr.End)
	nr.Description = core.CleanString(nr.Description)

	if err := core.TranslateError(core.Validate.Struct(nr)); err != nil {
		return err
	}
	if nr.Start >= nr.End {
		return core.NewValidationError(nil,
			core.FieldError{Field: "hora_fin", Error: "must be after hora_inicio"})
	}
	return nil
}

// UpdateRestriction defines what fields may be modified on an existing Record.
// Nil fields are left untouched.
type UpdateRestriction struct {
	Day         *core.Weekday `json:"dia_semana,omitempty" validate:"omitempty,weekday"`
	Start       *string       `json:"hora_inicio,omitempty" validate:"omitempty,hhmm"`
	End         *string       `json:"hora_fin,omitempty" validate:"omitempty,hhmm"`
	Available   *bool         `json:"disponible,omitempty"`
	Description *string       `json:"descripcion,omitempty" validate:"omitempty,max=255"`
	Active      *bool         `json:"activa,omitempty"`
}

func (ur *UpdateRestriction) IsEmpty() bool {
	return ur.Day == nil && ur.Start == nil && ur.End == nil &&
		ur.Available == nil && ur.Description == nil && ur.Active == nil
}

// Validate checks the partial update against the record it applies to, so the
// resulting slot still satisfies start < end.
func (ur *UpdateRestriction) Validate(orig Record) error {
	if ur.Start != nil {
		s := core.CleanTime(*ur.Start)
		ur.Start = &s
	}
	if ur.End != nil {
		e := core.CleanTime(*ur.End)
		ur.End = &e
	}
	if err := core.TranslateError(core.Validate.Struct(ur)); err != nil {
		return err
	}

	start, end := orig.Start, orig.End
	if ur.Start != nil {
		start = *ur.Start
	}
	if ur.End != nil {
		end = *ur.End
	}
	if start >= end {
		return core.NewValidationError(nil,
			core.FieldError{Field: "hora_fin", Error: "must be after hora_inicio"})
	}
	return nil
}
