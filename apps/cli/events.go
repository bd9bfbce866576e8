package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/ucvirtual/horario/core/event"
)

func (cli *commandLine) runEvents(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println("Usage: eventos list | add | rm")
		return errHelp
	}
	if err := cli.requirePage(ctx, "/eventos"); err != nil {
		return err
	}

	addCmd := flag.NewFlagSet("eventos add", flag.ExitOnError)
	addTitle := addCmd.String("nombre", "", "Event title")
	addDesc := addCmd.String("descripcion", "", "Optional description")
	addDate := addCmd.String("fecha", "", "Date YYYY-MM-DD")
	addStart := addCmd.String("inicio", "", "Start time HH:mm")
	addEnd := addCmd.String("fin", "", "End time HH:mm")

	rmCmd := flag.NewFlagSet("eventos rm", flag.ExitOnError)
	rmID := rmCmd.Int("id", 0, "Event id")

	switch args[0] {
	case "list":
		evs, err := cli.events.List(ctx)
		if err != nil {
			return err
		}
		printHeader("Eventos (%d)", len(evs))
		for _, ev := range evs {
			fmt.Printf("  #%-3d %-24s %s %s-%s\n", ev.ID, ev.Title, ev.Date, ev.Start, ev.End)
		}
		return nil
	case "add":
		if err := addCmd.Parse(args[1:]); err != nil {
			return err
		}
		// one edit at a time; the editor owns validation and field errors
		editor := event.NewEditor(cli.events)
		if err := editor.Begin(nil); err != nil {
			return err
		}
		if err := editor.Change(event.Draft{
			Title:       *addTitle,
			Description: *addDesc,
			Date:        *addDate,
			Start:       *addStart,
			End:         *addEnd,
			Active:      true,
		}); err != nil {
			return err
		}
		ev, err := editor.Submit(ctx)
		if err != nil {
			return err
		}
		printOK("evento #%d creado", ev.ID)
		return nil
	case "rm":
		if err := rmCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *rmID == 0 {
			rmCmd.Usage()
			return errHelp
		}
		if err := cli.events.Delete(ctx, *rmID); err != nil {
			return err
		}
		printOK("evento #%d eliminado", *rmID)
		return nil
	default:
		fmt.Println("Usage: eventos list | add | rm")
		return errHelp
	}
}
