// Package schedule holds the local weekly grid the calendar tab renders:
// (day, period) → event labels. It is single-user, single-device data; every
// mutation rewrites the stored copy in full, last writer wins.
package schedule

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/storage/kv"
)

const storageKey = "schedule"

// Periods is the fixed set of hour blocks a day is divided into. Slot keys
// outside this set are rejected.
var Periods = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

var (
	ErrUnknownSlot = errors.New("unknown day or period")
	ErrNoSuchEvent = errors.New("no event at this index")
)

// Slot is a (day, hour-block) coordinate in the weekly grid.
type Slot struct {
	Day    core.Weekday `json:"day"`
	Period string       `json:"period"`
}

func (s Slot) Valid() bool {
	if !s.Day.Valid() {
		return false
	}
	for _, p := range Periods {
		if p == s.Period {
			return true
		}
	}
	return false
}

type grid map[core.Weekday]map[string][]string

// Model is the in-memory schedule, persisted to the local store on every
// mutation.
type Model struct {
	kv kv.Store

	mutex sync.Mutex
	grid  grid
}

// NewModel loads the stored grid. A missing or corrupt blob starts empty; it
// must never crash the app.
func NewModel(kvs kv.Store) *Model {
	m := &Model{kv: kvs, grid: make(grid)}
	if raw, ok, err := kvs.Get(storageKey); err == nil && ok {
		var g grid
		if err := json.Unmarshal([]byte(raw), &g); err == nil && g != nil {
			m.grid = g
		}
	}
	return m
}

// AddEvent appends a label to the slot's list, creating the day and slot
// entries on demand.
func (m *Model) AddEvent(slot Slot, label string) error {
	if !slot.Valid() {
		return ErrUnknownSlot
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	day, ok := m.grid[slot.Day]
	if !ok {
		day = make(map[string][]string)
		m.grid[slot.Day] = day
	}
	day[slot.Period] = append(day[slot.Period], label)
	return m.persist()
}

func (m *Model) EditEvent(slot Slot, index int, label string) error {
	if !slot.Valid() {
		return ErrUnknownSlot
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	labels := m.grid[slot.Day][slot.Period]
	if index < 0 || index >= len(labels) {
		return ErrNoSuchEvent
	}
	labels[index] = label
	return m.persist()
}

// DeleteEvent removes the label at index and prunes the slot (and day) once
// empty, so no empty placeholder entries persist.
func (m *Model) DeleteEvent(slot Slot, index int) error {
	if !slot.Valid() {
		return ErrUnknownSlot
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	labels := m.grid[slot.Day][slot.Period]
	if index < 0 || index >= len(labels) {
		return ErrNoSuchEvent
	}
	labels = append(labels[:index], labels[index+1:]...)
	if len(labels) == 0 {
		delete(m.grid[slot.Day], slot.Period)
		if len(m.grid[slot.Day]) == 0 {
			delete(m.grid, slot.Day)
		}
	} else {
		m.grid[slot.Day][slot.Period] = labels
	}
	return m.persist()
}

// Events returns a copy of the slot's labels.
func (m *Model) Events(slot Slot) []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	labels := m.grid[slot.Day][slot.Period]
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// CountAll is the total number of labels across the whole grid, recomputed on
// demand rather than cached.
func (m *Model) CountAll() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var n int
	for _, day := range m.grid {
		for _, labels := range day {
			n += len(labels)
		}
	}
	return n
}

// persist writes the full grid; callers hold the mutex.
func (m *Model) persist() error {
	raw, err := json.Marshal(m.grid)
	if err != nil {
		return err
	}
	return m.kv.Set(storageKey, string(raw))
}
