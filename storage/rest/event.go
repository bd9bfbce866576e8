package rest

import (
	"context"
	"strings"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/event"
)

// EventRepository talks to /eventos.
type EventRepository struct {
	client *Client
}

var _ event.Repository = (*EventRepository)(nil)

func NewEventRepository(client *Client) *EventRepository {
	return &EventRepository{client: client}
}

type wireEvent struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Fecha       string `json:"fecha"`
	HoraInicio  string `json:"hora_inicio"`
	HoraCierre  string `json:"hora_cierre"`
	Active      *bool  `json:"active"`
	UserID      int    `json:"user_id"`
}

// normalizeEvent maps the wire shape to the canonical Event. Times may arrive
// as "HH:mm:ss" or as full "YYYY-MM-DDTHH:mm:ss" datetimes; the date part, if
// any, feeds Fecha when that field is absent.
func normalizeEvent(w wireEvent) event.Event {
	date := w.Fecha
	start, d1 := splitWireTime(w.HoraInicio)
	end, d2 := splitWireTime(w.HoraCierre)
	if date == "" {
		if d1 != "" {
			date = d1
		} else {
			date = d2
		}
	}

	active := true
	if w.Active != nil {
		active = *w.Active
	}
	return event.Event{
		ID:          w.ID,
		Title:       w.Nombre,
		Description: w.Descripcion,
		Date:        date,
		Start:       start,
		End:         end,
		Active:      active,
		UserID:      w.UserID,
	}
}

// splitWireTime returns the HH:mm time and, for datetime values, the date part.
func splitWireTime(s string) (hhmm, date string) {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return core.CleanTime(s[i+1:]), s[:i]
	}
	return core.CleanTime(s), ""
}

type eventPayload struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	Fecha       string `json:"fecha,omitempty"`
	HoraInicio  string `json:"hora_inicio,omitempty"`
	HoraCierre  string `json:"hora_cierre,omitempty"`
	Active      bool   `json:"active"`
}

func payloadOf(d event.Draft) eventPayload {
	return eventPayload{
		Nombre:      d.Title,
		Descripcion: d.Description,
		Fecha:       d.Date,
		HoraInicio:  d.Start,
		HoraCierre:  d.End,
		Active:      d.Active,
	}
}

func (repo *EventRepository) ListEvents(ctx context.Context) ([]event.Event, error) {
	var wires []wireEvent
	if err := repo.client.get(ctx, "/eventos/", &wires); err != nil {
		return nil, err
	}
	evs := make([]event.Event, 0, len(wires))
	for _, w := range wires {
		evs = append(evs, normalizeEvent(w))
	}
	return evs, nil
}

func (repo *EventRepository) GetEvent(ctx context.Context, id int) (event.Event, error) {
	var w wireEvent
	if err := repo.client.get(ctx, "/eventos/"+itoa(id), &w); err != nil {
		return event.Event{}, err
	}
	return normalizeEvent(w), nil
}

func (repo *EventRepository) CreateEvent(ctx context.Context, d event.Draft) (event.Event, error) {
	var w wireEvent
	if err := repo.client.post(ctx, "/eventos/", payloadOf(d), &w); err != nil {
		return event.Event{}, err
	}
	return normalizeEvent(w), nil
}

func (repo *EventRepository) UpdateEvent(ctx context.Context, id int, d event.Draft) (event.Event, error) {
	var w wireEvent
	if err := repo.client.put(ctx, "/eventos/"+itoa(id), payloadOf(d), &w); err != nil {
		return event.Event{}, err
	}
	return normalizeEvent(w), nil
}

func (repo *EventRepository) DeleteEvent(ctx context.Context, id int) error {
	return repo.client.delete(ctx, "/eventos/"+itoa(id))
}
