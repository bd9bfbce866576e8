package user

import (
	"github.com/ucvirtual/horario/core"
)

// Role is the canonical user role. Wire payloads carry inconsistent names
// across backend versions ("docente"/"profesor", "administrador"/"admin");
// NormalizeRole maps them all onto these three.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

var roleAliases = map[string]Role{
	"admin":         RoleAdmin,
	"administrador": RoleAdmin,
	"teacher":       RoleTeacher,
	"docente":       RoleTeacher,
	"profesor":      RoleTeacher,
	"student":       RoleStudent,
	"estudiante":    RoleStudent,
	"alumno":        RoleStudent,
}

// NormalizeRole maps any accepted wire role name to the canonical Role.
// Unknown names are passed through lowercased with ok=false; the route guard
// denies them.
func NormalizeRole(s string) (Role, bool) {
	s = core.CleanString(s, true /* lower */)
	if role, ok := roleAliases[s]; ok {
		return role, true
	}
	return Role(s), false
}

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

func (nu *NewUser) Validate() error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.TranslateError(core.Validate.Struct(nu)); err != nil {
		return err
	}
	if err := ValidatePassword(nu.Password, nu.Name, nu.Email); err != nil {
		return err
	}
	role, ok := NormalizeRole(nu.Role)
	if !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "role", Error: "unknown role"})
	}
	nu.Role = string(role)
	return nil
}
