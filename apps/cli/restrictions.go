package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/restriction"
)

func (cli *commandLine) runRestrictions(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println("Usage: restricciones list | add | update | rm")
		return errHelp
	}
	if err := cli.requirePage(ctx, "/docente/restricciones"); err != nil {
		return err
	}

	addCmd := flag.NewFlagSet("restricciones add", flag.ExitOnError)
	addDay := addCmd.Int("dia", 0, "Weekday 1 (Lunes) .. 7 (Domingo)")
	addStart := addCmd.String("inicio", "", "Start time HH:mm")
	addEnd := addCmd.String("fin", "", "End time HH:mm")
	addAvailable := addCmd.Bool("disponible", false, "Mark the window as available rather than blocked")
	addDesc := addCmd.String("descripcion", "", "Optional description")

	updCmd := flag.NewFlagSet("restricciones update", flag.ExitOnError)
	updID := updCmd.Int("id", 0, "Restriction id")
	updStart := updCmd.String("inicio", "", "New start time HH:mm")
	updEnd := updCmd.String("fin", "", "New end time HH:mm")
	updDesc := updCmd.String("descripcion", "", "New description")

	rmCmd := flag.NewFlagSet("restricciones rm", flag.ExitOnError)
	rmID := rmCmd.Int("id", 0, "Restriction id")

	switch args[0] {
	case "list":
		recs, err := cli.restrictions.ListMine(ctx)
		if err != nil {
			return err
		}
		printRestrictions(recs)
		return nil
	case "add":
		if err := addCmd.Parse(args[1:]); err != nil {
			return err
		}
		rec, err := cli.restrictions.Create(ctx, restriction.NewRestriction{
			Day:         core.Weekday(*addDay),
			Start:       *addStart,
			End:         *addEnd,
			Available:   *addAvailable,
			Description: *addDesc,
		})
		if err != nil {
			return err
		}
		printOK("restricción #%d creada", rec.ID)
		return nil
	case "update":
		if err := updCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updID == 0 {
			updCmd.Usage()
			return errHelp
		}
		var ur restriction.UpdateRestriction
		if *updStart != "" {
			ur.Start = updStart
		}
		if *updEnd != "" {
			ur.End = updEnd
		}
		if *updDesc != "" {
			ur.Description = updDesc
		}
		if ur.IsEmpty() {
			updCmd.Usage()
			return errHelp
		}
		rec, err := cli.restrictions.Update(ctx, *updID, ur)
		if err != nil {
			return err
		}
		printOK("restricción #%d actualizada", rec.ID)
		return nil
	case "rm":
		if err := rmCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *rmID == 0 {
			rmCmd.Usage()
			return errHelp
		}
		if err := cli.restrictions.Delete(ctx, *rmID); err != nil {
			return err
		}
		printOK("restricción #%d eliminada", *rmID)
		return nil
	default:
		fmt.Println("Usage: restricciones list | add | update | rm")
		return errHelp
	}
}

func printRestrictions(recs []restriction.Record) {
	printHeader("Restricciones horarias (%d)", len(recs))
	for _, rec := range recs {
		state := "bloqueado"
		if rec.Available {
			state = "disponible"
		}
		fmt.Printf("  #%-3d %-10s %s-%s  %s", rec.ID, rec.Day, rec.Start, rec.End, state)
		if rec.Description != "" {
			fmt.Printf("  (%s)", rec.Description)
		}
		if !rec.Active {
			fmt.Print("  [inactiva]")
		}
		fmt.Println()
	}
}
