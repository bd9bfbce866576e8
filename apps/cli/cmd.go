package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/term"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/auth"
	"github.com/ucvirtual/horario/core/event"
	"github.com/ucvirtual/horario/core/guard"
	"github.com/ucvirtual/horario/core/restriction"
	"github.com/ucvirtual/horario/core/schedule"
	"github.com/ucvirtual/horario/core/session"
	"github.com/ucvirtual/horario/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	logger       core.Logger
	sessions     *session.Store
	gateway      *auth.Gateway
	guard        *guard.Guard
	agenda       *schedule.Model
	restrictions *restriction.Manager
	events       *event.Service
	users        *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -email EMAIL             - sign in (password is prompted)")
	fmt.Println("  logout                         - sign out")
	fmt.Println("  whoami                         - show the current session")
	fmt.Println("  agenda ...                     - local weekly schedule grid")
	fmt.Println("  restricciones ...              - my availability restrictions")
	fmt.Println("  eventos ...                    - calendar events")
	fmt.Println("  users ...                      - user management (admin)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		cli.gateway.Logout(ctx)
		printOK("sesión cerrada")
		return nil
	case "whoami":
		return cli.whoami(ctx)
	case "agenda":
		return cli.runAgenda(args[2:])
	case "restricciones":
		return cli.runRestrictions(ctx, args[2:])
	case "eventos":
		return cli.runEvents(ctx, args[2:])
	case "users":
		return cli.runUsers(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// requirePage runs the route guard for a page before a command touches it.
func (cli *commandLine) requirePage(ctx context.Context, path string) error {
	decision := cli.guard.ResolveWait(ctx, path)
	switch decision.State {
	case guard.Allowed:
		return nil
	case guard.RedirectToLogin:
		return errors.New("no has iniciado sesión: usa `horario login`")
	default:
		if decision.Reason != "" {
			return fmt.Errorf("acceso denegado (%s)", decision.Reason)
		}
		return errors.New("acceso denegado")
	}
}
