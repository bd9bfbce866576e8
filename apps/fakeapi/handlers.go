package main

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ucvirtual/horario/core"
)

// auth

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contrasena" validate:"required"`
}

func (s *server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.Email = core.CleanString(req.Email, true /* lower */)
	if err := validateStruct(&req); err != nil {
		return err
	}

	usr, ok := s.store.userByEmail(req.Email)
	if !ok || !usr.IsActive {
		return errBadLogin
	}
	if err := bcrypt.CompareHashAndPassword(usr.pwdHash, []byte(req.Password)); err != nil {
		return errBadLogin
	}

	token, err := s.signToken(usr)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *server) logout(c echo.Context) error {
	// tokens are stateless; nothing to revoke
	return c.NoContent(http.StatusNoContent)
}

func (s *server) me(c echo.Context) error {
	usr := contextUser(c)
	return c.JSON(http.StatusOK, echo.Map{
		"id":        usr.ID,
		"name":      usr.Name,
		"email":     usr.Email,
		"rol":       usr.Rol,
		"is_active": usr.IsActive,
	})
}

// restricciones-horario

type restrictionRequest struct {
	DiaSemana   int    `json:"dia_semana" validate:"required,weekday"`
	HoraInicio  string `json:"hora_inicio" validate:"required,hhmm"`
	HoraFin     string `json:"hora_fin" validate:"required,hhmm"`
	Disponible  bool   `json:"disponible"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=255"`
}

func (s *server) listMyRestrictions(c echo.Context) error {
	usr := contextUser(c)
	return c.JSON(http.StatusOK, sortedRestrictions(s.store.restrictionsByDocente(usr.DocenteID)))
}

func (s *server) createMyRestriction(c echo.Context) error {
	usr := contextUser(c)
	var req restrictionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	if req.HoraInicio >= req.HoraFin {
		return core.NewValidationError(nil,
			core.FieldError{Field: "hora_fin", Error: "debe ser posterior a hora_inicio"})
	}

	rec := s.store.addRestriction(&fakeRestriction{
		DocenteID:   usr.DocenteID,
		DiaSemana:   req.DiaSemana,
		HoraInicio:  req.HoraInicio + ":00",
		HoraFin:     req.HoraFin + ":00",
		Disponible:  req.Disponible,
		Descripcion: req.Descripcion,
		Activa:      true,
	})
	return c.JSON(http.StatusCreated, rec)
}

type restrictionPatch struct {
	DiaSemana   *int    `json:"dia_semana" validate:"omitempty,weekday"`
	HoraInicio  *string `json:"hora_inicio" validate:"omitempty,hhmm"`
	HoraFin     *string `json:"hora_fin" validate:"omitempty,hhmm"`
	Disponible  *bool   `json:"disponible"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
	Activa      *bool   `json:"activa"`
}

func (s *server) updateMyRestriction(c echo.Context) error {
	usr := contextUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rec, ok := s.store.restrictionByID(id)
	if !ok || rec.DocenteID != usr.DocenteID {
		return errNotFound
	}

	var req restrictionPatch
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	// patch a copy first; a rejected patch must leave the stored record as is
	patched := *rec
	if req.DiaSemana != nil {
		patched.DiaSemana = *req.DiaSemana
	}
	if req.HoraInicio != nil {
		patched.HoraInicio = *req.HoraInicio + ":00"
	}
	if req.HoraFin != nil {
		patched.HoraFin = *req.HoraFin + ":00"
	}
	if req.Disponible != nil {
		patched.Disponible = *req.Disponible
	}
	if req.Descripcion != nil {
		patched.Descripcion = *req.Descripcion
	}
	if req.Activa != nil {
		patched.Activa = *req.Activa
	}
	if patched.HoraInicio >= patched.HoraFin {
		return core.NewValidationError(nil,
			core.FieldError{Field: "hora_fin", Error: "debe ser posterior a hora_inicio"})
	}
	*rec = patched
	return c.JSON(http.StatusOK, rec)
}

func (s *server) deleteMyRestriction(c echo.Context) error {
	usr := contextUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rec, ok := s.store.restrictionByID(id)
	if !ok || rec.DocenteID != usr.DocenteID {
		return errNotFound
	}
	s.store.removeRestriction(id)
	return c.NoContent(http.StatusNoContent)
}

// englishRestriction is the alias shape some backend versions answer with on
// the admin routes; the client must normalize both.
type englishRestriction struct {
	ID          int    `json:"id"`
	TeacherID   int    `json:"teacher_id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Available   bool   `json:"available"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

func toEnglish(r *fakeRestriction) englishRestriction {
	return englishRestriction{
		ID:          r.ID,
		TeacherID:   r.DocenteID,
		DayOfWeek:   r.DiaSemana,
		StartTime:   r.HoraInicio,
		EndTime:     r.HoraFin,
		Available:   r.Disponible,
		Description: r.Descripcion,
		Active:      r.Activa,
	}
}

func (s *server) listAllRestrictions(c echo.Context) error {
	recs := sortedRestrictions(s.store.restrictionsByDocente(0))
	out := make([]englishRestriction, 0, len(recs))
	for _, r := range recs {
		out = append(out, toEnglish(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *server) listDocenteRestrictions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sortedRestrictions(s.store.restrictionsByDocente(id)))
}

func sortedRestrictions(recs []*fakeRestriction) []*fakeRestriction {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].DiaSemana != recs[j].DiaSemana {
			return recs[i].DiaSemana < recs[j].DiaSemana
		}
		return recs[i].HoraInicio < recs[j].HoraInicio
	})
	return recs
}

// eventos

type eventRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=120"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=500"`
	Fecha       string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	HoraInicio  string `json:"hora_inicio" validate:"omitempty,hhmm"`
	HoraCierre  string `json:"hora_cierre" validate:"omitempty,hhmm"`
	Active      bool   `json:"active"`
}

func (s *server) listEvents(c echo.Context) error {
	evs := s.store.allEvents()
	sort.Slice(evs, func(i, j int) bool { return evs[i].ID < evs[j].ID })
	return c.JSON(http.StatusOK, evs)
}

func (s *server) getEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ev, ok := s.store.eventByID(id)
	if !ok {
		return errNotFound
	}
	return c.JSON(http.StatusOK, ev)
}

func (s *server) createEvent(c echo.Context) error {
	usr := contextUser(c)
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	ev := s.store.addEvent(&fakeEvent{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Fecha:       req.Fecha,
		HoraInicio:  req.HoraInicio,
		HoraCierre:  req.HoraCierre,
		Active:      req.Active,
		UserID:      usr.ID,
	})
	return c.JSON(http.StatusCreated, ev)
}

func (s *server) updateEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ev, ok := s.store.eventByID(id)
	if !ok {
		return errNotFound
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	ev.Nombre = req.Nombre
	ev.Descripcion = req.Descripcion
	ev.Fecha = req.Fecha
	ev.HoraInicio = req.HoraInicio
	ev.HoraCierre = req.HoraCierre
	ev.Active = req.Active
	return c.JSON(http.StatusOK, ev)
}

func (s *server) deleteEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if !s.store.removeEvent(id) {
		return errNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

// users

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

func (s *server) listUsers(c echo.Context) error {
	users := s.store.allUsers()
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	out := make([]echo.Map, 0, len(users))
	for _, usr := range users {
		out = append(out, echo.Map{
			"id":        usr.ID,
			"name":      usr.Name,
			"email":     usr.Email,
			"rol":       usr.Rol,
			"is_active": usr.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *server) registerUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.Email = core.CleanString(req.Email, true /* lower */)
	if err := validateStruct(&req); err != nil {
		return err
	}
	if _, exists := s.store.userByEmail(req.Email); exists {
		return core.NewValidationError(nil,
			core.FieldError{Field: "email", Error: "ya existe un usuario con este email"})
	}

	var docenteID int
	if req.Role == "teacher" || req.Role == "docente" || req.Role == "profesor" {
		docenteID = s.store.nextDocenteID()
	}
	usr := s.store.addUser(req.Name, req.Email, req.Role, req.Password, docenteID)
	return c.JSON(http.StatusCreated, echo.Map{
		"id":        usr.ID,
		"name":      usr.Name,
		"email":     usr.Email,
		"rol":       usr.Rol,
		"is_active": usr.IsActive,
	})
}
