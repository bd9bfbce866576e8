package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/ucvirtual/horario/core"
)

var (
	okColor    = color.New(color.FgGreen)
	errColor   = color.New(color.FgRed, color.Bold)
	fieldColor = color.New(color.FgYellow)
	headColor  = color.New(color.FgCyan, color.Bold)
)

func printOK(format string, args ...interface{}) {
	okColor.Printf(format+"\n", args...)
}

func printHeader(format string, args ...interface{}) {
	headColor.Printf(format+"\n", args...)
}

// printError renders an error's user-facing message; validation errors list
// their field messages next to the field names.
func printError(err error) {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		errColor.Println("entrada inválida:")
		for _, fErr := range vErr.Fields {
			fieldColor.Printf("  %s: ", fErr.Field)
			fmt.Println(fErr.Error)
		}
		if len(vErr.Fields) == 0 {
			fmt.Println("  " + vErr.Error())
		}
		return
	}

	switch {
	case errors.Is(err, core.ErrInvalidCredentials):
		errColor.Println("credenciales inválidas")
	case errors.Is(err, core.ErrSessionExpired):
		errColor.Println("la sesión expiró: inicia sesión de nuevo")
	case errors.Is(err, core.ErrNetworkUnavailable):
		errColor.Println("sin conexión con el servidor: reintenta")
	case errors.Is(err, core.ErrNotFound):
		errColor.Println("no encontrado")
	default:
		errColor.Printf("error: %s\n", err)
	}
}
