package restriction

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type (
	// Repository is the wire-facing side of the manager. Implementations
	// normalize server payloads into canonical Records.
	Repository interface {
		ListMine(ctx context.Context) ([]Record, error)
		ListByTeacher(ctx context.Context, teacherID int) ([]Record, error)
		ListAll(ctx context.Context) ([]Record, error)
		CreateMine(ctx context.Context, nr NewRestriction) (Record, error)
		UpdateMine(ctx context.Context, id int, ur UpdateRestriction) (Record, error)
		DeleteMine(ctx context.Context, id int) error
	}

	// Manager exposes a teacher's restriction CRUD over the repository and
	// keeps the list the UI renders. An optimistic insert is visible
	// immediately and reconciled (or rolled back) once the server answers;
	// a delete only disappears once the server confirms it.
	Manager struct {
		repo Repository

		mutex sync.Mutex
		list  []Record
	}
)

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// ListMine fetches, normalizes and sorts the caller's restrictions by
// (day, start) ascending for stable display.
func (m *Manager) ListMine(ctx context.Context) ([]Record, error) {
	recs, err := m.repo.ListMine(ctx)
	if err != nil {
		return nil, err
	}
	sortRecords(recs)

	m.mutex.Lock()
	m.list = recs
	m.mutex.Unlock()
	return m.Cached(), nil
}

func (m *Manager) ListByTeacher(ctx context.Context, teacherID int) ([]Record, error) {
	recs, err := m.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	sortRecords(recs)
	return recs, nil
}

func (m *Manager) ListAll(ctx context.Context) ([]Record, error) {
	recs, err := m.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sortRecords(recs)
	return recs, nil
}

// Create inserts the record locally under a provisional key, then asks the
// server for the real one. On failure the provisional entry is rolled back.
func (m *Manager) Create(ctx context.Context, nr NewRestriction) (Record, error) {
	if err := nr.Validate(); err != nil {
		return Record{}, err
	}

	provisional := Record{
		ClientKey:   uuid.New().String(),
		Day:         nr.Day,
		Start:       nr.Start,
		End:         nr.End,
		Available:   nr.Available,
		Description: nr.Description,
		Active:      true,
	}
	m.mutex.Lock()
	m.list = append(m.list, provisional)
	sortRecords(m.list)
	m.mutex.Unlock()

	rec, err := m.repo.CreateMine(ctx, nr)

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.dropKey(provisional.ClientKey)
	if err != nil {
		return Record{}, err
	}
	m.list = append(m.list, rec)
	sortRecords(m.list)
	return rec, nil
}

func (m *Manager) Update(ctx context.Context, id int, ur UpdateRestriction) (Record, error) {
	orig, ok := m.cachedByID(id)
	if ok {
		if err := ur.Validate(orig); err != nil {
			return Record{}, err
		}
	}

	rec, err := m.repo.UpdateMine(ctx, id, ur)
	if err != nil {
		return Record{}, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i := range m.list {
		if m.list[i].ID == id {
			m.list[i] = rec
			break
		}
	}
	sortRecords(m.list)
	return rec, nil
}

// Delete is fire-and-confirm: the record stays visible until the server
// confirms the deletion.
func (m *Manager) Delete(ctx context.Context, id int) error {
	if err := m.repo.DeleteMine(ctx, id); err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i := range m.list {
		if m.list[i].ID == id {
			m.list = append(m.list[:i], m.list[i+1:]...)
			break
		}
	}
	return nil
}

// Cached returns a copy of the list as last reconciled with the server,
// including any in-flight optimistic inserts.
func (m *Manager) Cached() []Record {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]Record, len(m.list))
	copy(out, m.list)
	return out
}

func (m *Manager) cachedByID(id int) (Record, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, rec := range m.list {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// dropKey removes the provisional entry; callers hold the mutex.
func (m *Manager) dropKey(key string) {
	for i := range m.list {
		if m.list[i].ClientKey == key {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return
		}
	}
}

func sortRecords(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Day != recs[j].Day {
			return recs[i].Day < recs[j].Day
		}
		return recs[i].Start < recs[j].Start
	})
}
