package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucvirtual/horario/core"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "usuario no autenticado")
	errBadLogin     = echo.NewHTTPError(http.StatusUnauthorized, "credenciales inválidas")
	errForbidden    = echo.NewHTTPError(http.StatusForbidden, "permiso denegado")
	errNotFound     = echo.NewHTTPError(http.StatusNotFound, "no encontrado")
)

// appHTTPErrorHandler renders errors the way the real backend does: a
// "detail" message, or an "errors" map for validation failures.
func appHTTPErrorHandler(err error, c echo.Context) {
	var code int
	var payload interface{}

	switch err := err.(type) {
	case *echo.HTTPError:
		if err.Internal != nil {
			if herr, ok := err.Internal.(*echo.HTTPError); ok {
				err = herr
			}
		}
		code = err.Code
		payload = echo.Map{"detail": err.Message}
	case *core.ValidationError:
		code = http.StatusUnprocessableEntity
		if len(err.Fields) > 0 {
			payload = echo.Map{"errors": err.FieldMap()}
		} else {
			payload = echo.Map{"detail": err.Error()}
		}
	default:
		code = http.StatusInternalServerError
		payload = echo.Map{"detail": http.StatusText(code)}
	}

	if !c.Response().Committed {
		if jErr := c.JSON(code, payload); jErr != nil {
			c.Echo().Logger.Error(jErr)
		}
	}
}
