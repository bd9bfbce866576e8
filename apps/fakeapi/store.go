package main

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// fakeUser is a seeded account. Roles deliberately use the Spanish names the
// real backend answers with.
type fakeUser struct {
	ID        int
	Name      string
	Email     string
	Rol       string
	IsActive  bool
	DocenteID int // 0 for non-teachers
	pwdHash   []byte
}

type fakeRestriction struct {
	ID          int    `json:"id"`
	DocenteID   int    `json:"docente_id"`
	DiaSemana   int    `json:"dia_semana"`
	HoraInicio  string `json:"hora_inicio"`
	HoraFin     string `json:"hora_fin"`
	Disponible  bool   `json:"disponible"`
	Descripcion string `json:"descripcion,omitempty"`
	Activa      bool   `json:"activa"`
}

type fakeEvent struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	Fecha       string `json:"fecha,omitempty"`
	HoraInicio  string `json:"hora_inicio,omitempty"`
	HoraCierre  string `json:"hora_cierre,omitempty"`
	Active      bool   `json:"active"`
	UserID      int    `json:"user_id"`
}

type store struct {
	mutex sync.RWMutex

	users        map[int]*fakeUser
	restrictions map[int]*fakeRestriction
	events       map[int]*fakeEvent

	nextUserID        int
	nextRestrictionID int
	nextEventID       int
}

func openStore() *store {
	st := &store{
		users:             make(map[int]*fakeUser),
		restrictions:      make(map[int]*fakeRestriction),
		events:            make(map[int]*fakeEvent),
		nextUserID:        1,
		nextRestrictionID: 1,
		nextEventID:       1,
	}
	st.seed()
	return st
}

func (st *store) seed() {
	st.addUser("Ana Admin", "admin@uni.edu", "administrador", "admin1234", 0)
	docente := st.addUser("Diego Docente", "docente@uni.edu", "docente", "docente1234", 1)
	st.addUser("Elena Estudiante", "estudiante@uni.edu", "estudiante", "estudiante1234", 0)

	st.addRestriction(&fakeRestriction{
		DocenteID:   docente.DocenteID,
		DiaSemana:   1,
		HoraInicio:  "08:00:00",
		HoraFin:     "10:00:00",
		Disponible:  false,
		Descripcion: "Reunión de departamento",
		Activa:      true,
	})
	st.addEvent(&fakeEvent{
		Nombre:     "Inicio de semestre",
		Fecha:      "2026-03-02",
		HoraInicio: "08:00:00",
		HoraCierre: "09:00:00",
		Active:     true,
		UserID:     1,
	})
}

func (st *store) addUser(name, email, rol, pwd string, docenteID int) *fakeUser {
	hash, _ := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	st.mutex.Lock()
	defer st.mutex.Unlock()
	usr := &fakeUser{
		ID:        st.nextUserID,
		Name:      name,
		Email:     email,
		Rol:       rol,
		IsActive:  true,
		DocenteID: docenteID,
		pwdHash:   hash,
	}
	st.users[usr.ID] = usr
	st.nextUserID++
	return usr
}

func (st *store) nextDocenteID() int {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	max := 0
	for _, usr := range st.users {
		if usr.DocenteID > max {
			max = usr.DocenteID
		}
	}
	return max + 1
}

func (st *store) userByEmail(email string) (*fakeUser, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	for _, usr := range st.users {
		if usr.Email == email {
			return usr, true
		}
	}
	return nil, false
}

func (st *store) userByID(id int) (*fakeUser, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	usr, ok := st.users[id]
	return usr, ok
}

func (st *store) allUsers() []*fakeUser {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	out := make([]*fakeUser, 0, len(st.users))
	for _, usr := range st.users {
		out = append(out, usr)
	}
	return out
}

func (st *store) addRestriction(r *fakeRestriction) *fakeRestriction {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	r.ID = st.nextRestrictionID
	st.nextRestrictionID++
	st.restrictions[r.ID] = r
	return r
}

func (st *store) restrictionsByDocente(docenteID int) []*fakeRestriction {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	out := make([]*fakeRestriction, 0)
	for _, r := range st.restrictions {
		if docenteID == 0 || r.DocenteID == docenteID {
			out = append(out, r)
		}
	}
	return out
}

func (st *store) restrictionByID(id int) (*fakeRestriction, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	r, ok := st.restrictions[id]
	return r, ok
}

func (st *store) removeRestriction(id int) bool {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	if _, ok := st.restrictions[id]; !ok {
		return false
	}
	delete(st.restrictions, id)
	return true
}

func (st *store) addEvent(ev *fakeEvent) *fakeEvent {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	ev.ID = st.nextEventID
	st.nextEventID++
	st.events[ev.ID] = ev
	return ev
}

func (st *store) allEvents() []*fakeEvent {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	out := make([]*fakeEvent, 0, len(st.events))
	for _, ev := range st.events {
		out = append(out, ev)
	}
	return out
}

func (st *store) eventByID(id int) (*fakeEvent, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	ev, ok := st.events[id]
	return ev, ok
}

func (st *store) removeEvent(id int) bool {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	if _, ok := st.events[id]; !ok {
		return false
	}
	delete(st.events, id)
	return true
}
