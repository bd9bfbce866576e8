package main

import (
	"context"
	"flag"
	"fmt"
	"syscall"

	"github.com/ucvirtual/horario/core/user"
)

func (cli *commandLine) runUsers(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println("Usage: users list | add")
		return errHelp
	}
	if err := cli.requirePage(ctx, "/admin/users"); err != nil {
		return err
	}

	addCmd := flag.NewFlagSet("users add", flag.ExitOnError)
	addName := addCmd.String("name", "", "Full name")
	addEmail := addCmd.String("email", "", "Email address")
	addRole := addCmd.String("role", "", "Role: admin, teacher/docente or student/estudiante")

	switch args[0] {
	case "list":
		users, err := cli.users.List(ctx)
		if err != nil {
			return err
		}
		printHeader("Usuarios (%d)", len(users))
		for _, usr := range users {
			active := ""
			if !usr.IsActive {
				active = "  [inactivo]"
			}
			fmt.Printf("  #%-3d %-24s %-28s %s%s\n", usr.ID, usr.Name, usr.Email, usr.Role, active)
		}
		return nil
	case "add":
		if err := addCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *addEmail == "" {
			addCmd.Usage()
			return errHelp
		}
		fmt.Print("Contraseña: ")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}

		usr, err := cli.users.Register(ctx, user.NewUser{
			Name:     *addName,
			Email:    *addEmail,
			Password: string(pwd),
			Role:     *addRole,
		})
		if err != nil {
			return err
		}
		printOK("usuario #%d (%s) registrado como %s", usr.ID, usr.Email, usr.Role)
		return nil
	default:
		fmt.Println("Usage: users list | add")
		return errHelp
	}
}
