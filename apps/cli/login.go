package main

import (
	"context"
	"flag"
	"fmt"
	"syscall"

	"github.com/ucvirtual/horario/core/guard"
)

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := loginCmd.String("email", "", "The account's email. The password will be prompted next.")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		loginCmd.Usage()
		return errHelp
	}

	// the login page is public: an authenticated user is sent away instead
	if decision := cli.guard.ResolvePublic(); decision.State == guard.Denied {
		printOK("ya has iniciado sesión (ve a %s)", decision.Redirect)
		return nil
	}

	fmt.Print("Contraseña: ")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return err
	}

	sess, err := cli.gateway.Login(ctx, *email, string(pwd))
	if err != nil {
		return err
	}
	printOK("sesión iniciada como %s (%s)", sess.Email, sess.Role)
	printOK("página de inicio: %s", guard.Landing(sess.Role))
	return nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	sess, ok := cli.gateway.Session()
	if !ok {
		return fmt.Errorf("no has iniciado sesión")
	}
	usr, err := cli.gateway.Validate(ctx)
	if err != nil {
		return err
	}
	printHeader("%s <%s>", usr.Name, usr.Email)
	fmt.Printf("  rol:    %s\n", usr.Role)
	fmt.Printf("  expira: %s\n", sess.Expiry.Format("2006-01-02 15:04"))
	return nil
}
