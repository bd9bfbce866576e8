package rest

import (
	"context"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/restriction"
)

// RestrictionRepository talks to /restricciones-horario. Backend versions
// answer with either the Spanish field names or their English aliases;
// normalizeRestriction is the single place both shapes collapse into the
// canonical Record.
type RestrictionRepository struct {
	client *Client
}

var _ restriction.Repository = (*RestrictionRepository)(nil)

func NewRestrictionRepository(client *Client) *RestrictionRepository {
	return &RestrictionRepository{client: client}
}

type wireRestriction struct {
	ID int `json:"id"`

	DocenteID *int `json:"docente_id"`
	TeacherID *int `json:"teacher_id"`

	DiaSemana *int `json:"dia_semana"`
	DayOfWeek *int `json:"day_of_week"`

	HoraInicio *string `json:"hora_inicio"`
	StartTime  *string `json:"start_time"`

	HoraFin *string `json:"hora_fin"`
	EndTime *string `json:"end_time"`

	Disponible *bool `json:"disponible"`
	Available  *bool `json:"available"`

	Descripcion *string `json:"descripcion"`
	Description *string `json:"description"`

	Activa *bool `json:"activa"`
	Active *bool `json:"active"`
}

// normalizeRestriction maps any accepted wire shape to one canonical Record.
func normalizeRestriction(w wireRestriction) restriction.Record {
	rec := restriction.Record{
		ID:        w.ID,
		TeacherID: pickInt(w.DocenteID, w.TeacherID),
		Day:       core.Weekday(pickInt(w.DiaSemana, w.DayOfWeek)),
		Start:     core.CleanTime(pickString(w.HoraInicio, w.StartTime)),
		End:       core.CleanTime(pickString(w.HoraFin, w.EndTime)),
		Available: pickBool(w.Disponible, w.Available, false),
		Active:    pickBool(w.Activa, w.Active, true),
	}
	rec.Description = pickString(w.Descripcion, w.Description)
	return rec
}

func pickInt(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

func pickString(vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return ""
}

func pickBool(a, b *bool, fallback bool) bool {
	if a != nil {
		return *a
	}
	if b != nil {
		return *b
	}
	return fallback
}

func (repo *RestrictionRepository) list(ctx context.Context, path string) ([]restriction.Record, error) {
	var wires []wireRestriction
	if err := repo.client.get(ctx, path, &wires); err != nil {
		return nil, err
	}
	recs := make([]restriction.Record, 0, len(wires))
	for _, w := range wires {
		recs = append(recs, normalizeRestriction(w))
	}
	return recs, nil
}

func (repo *RestrictionRepository) ListMine(ctx context.Context) ([]restriction.Record, error) {
	return repo.list(ctx, "/restricciones-horario/docente/mis-restricciones")
}

func (repo *RestrictionRepository) ListByTeacher(ctx context.Context, teacherID int) ([]restriction.Record, error) {
	return repo.list(ctx, "/restricciones-horario/docente/"+itoa(teacherID))
}

func (repo *RestrictionRepository) ListAll(ctx context.Context) ([]restriction.Record, error) {
	return repo.list(ctx, "/restricciones-horario/")
}

func (repo *RestrictionRepository) CreateMine(ctx context.Context, nr restriction.NewRestriction) (restriction.Record, error) {
	var w wireRestriction
	err := repo.client.post(ctx, "/restricciones-horario/docente/mis-restricciones", nr, &w)
	if err != nil {
		return restriction.Record{}, err
	}
	return normalizeRestriction(w), nil
}

func (repo *RestrictionRepository) UpdateMine(ctx context.Context, id int, ur restriction.UpdateRestriction) (restriction.Record, error) {
	var w wireRestriction
	err := repo.client.patch(ctx, "/restricciones-horario/docente/mis-restricciones/"+itoa(id), ur, &w)
	if err != nil {
		return restriction.Record{}, err
	}
	return normalizeRestriction(w), nil
}

func (repo *RestrictionRepository) DeleteMine(ctx context.Context, id int) error {
	return repo.client.delete(ctx, "/restricciones-horario/docente/mis-restricciones/"+itoa(id))
}
