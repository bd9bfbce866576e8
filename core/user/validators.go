package user

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ucvirtual/horario/core"
)

const (
	pwdMinLen = 8
	pwdMaxSim = 0.7
)

// ValidatePassword enforces the account password rules: minimum length, not
// all numeric, and not too similar to the user's name or email.
func ValidatePassword(pwd, name, email string) error {
	fieldErr := func(msg string) error {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: msg})
	}

	if len(pwd) < pwdMinLen {
		return fieldErr("must be at least 8 characters long")
	}

	digitCount := 0
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			return fieldErr("must not contain spaces")
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
	}
	if digitCount == len(pwd) {
		return fieldErr("must not be entirely numeric")
	}

	getRatio := func(pass, usrAttr string) float64 {
		if usrAttr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(pass, ""), strings.Split(usrAttr, "")).QuickRatio()
	}
	lpwd := strings.ToLower(pwd)
	if getRatio(lpwd, strings.ToLower(name)) >= pwdMaxSim ||
		getRatio(lpwd, strings.ToLower(email)) >= pwdMaxSim {
		return fieldErr("too similar to your name or email")
	}
	return nil
}
