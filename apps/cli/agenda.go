package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/schedule"
)

// runAgenda operates on the local weekly grid; it needs no session since the
// data never leaves the device.
func (cli *commandLine) runAgenda(args []string) error {
	if len(args) < 1 {
		fmt.Println("Usage: agenda show | add | edit | rm")
		return errHelp
	}

	addCmd := flag.NewFlagSet("agenda add", flag.ExitOnError)
	addDay := addCmd.Int("dia", 0, "Weekday 1 (Lunes) .. 7 (Domingo)")
	addHour := addCmd.String("hora", "", "Period, e.g. 08:00")
	addText := addCmd.String("texto", "", "Event label")

	editCmd := flag.NewFlagSet("agenda edit", flag.ExitOnError)
	editDay := editCmd.Int("dia", 0, "Weekday 1 (Lunes) .. 7 (Domingo)")
	editHour := editCmd.String("hora", "", "Period, e.g. 08:00")
	editIndex := editCmd.Int("i", -1, "Index of the event within the slot")
	editText := editCmd.String("texto", "", "New label")

	rmCmd := flag.NewFlagSet("agenda rm", flag.ExitOnError)
	rmDay := rmCmd.Int("dia", 0, "Weekday 1 (Lunes) .. 7 (Domingo)")
	rmHour := rmCmd.String("hora", "", "Period, e.g. 08:00")
	rmIndex := rmCmd.Int("i", -1, "Index of the event within the slot")

	switch args[0] {
	case "show":
		cli.showAgenda()
		return nil
	case "add":
		if err := addCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *addText == "" {
			addCmd.Usage()
			return errHelp
		}
		slot := schedule.Slot{Day: core.Weekday(*addDay), Period: *addHour}
		if err := cli.agenda.AddEvent(slot, *addText); err != nil {
			return err
		}
		printOK("evento agregado (%d en total)", cli.agenda.CountAll())
		return nil
	case "edit":
		if err := editCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *editText == "" || *editIndex < 0 {
			editCmd.Usage()
			return errHelp
		}
		slot := schedule.Slot{Day: core.Weekday(*editDay), Period: *editHour}
		if err := cli.agenda.EditEvent(slot, *editIndex, *editText); err != nil {
			return err
		}
		printOK("evento actualizado")
		return nil
	case "rm":
		if err := rmCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *rmIndex < 0 {
			rmCmd.Usage()
			return errHelp
		}
		slot := schedule.Slot{Day: core.Weekday(*rmDay), Period: *rmHour}
		if err := cli.agenda.DeleteEvent(slot, *rmIndex); err != nil {
			return err
		}
		printOK("evento eliminado (%d en total)", cli.agenda.CountAll())
		return nil
	default:
		fmt.Println("Usage: agenda show | add | edit | rm")
		return errHelp
	}
}

func (cli *commandLine) showAgenda() {
	printHeader("Agenda semanal (%d eventos)", cli.agenda.CountAll())
	for day := core.Lunes; day <= core.Domingo; day++ {
		var lines []string
		for _, period := range schedule.Periods {
			labels := cli.agenda.Events(schedule.Slot{Day: day, Period: period})
			for i, label := range labels {
				lines = append(lines, fmt.Sprintf("  %s [%d] %s", period, i, label))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Println(day.String())
		fmt.Println(strings.Join(lines, "\n"))
	}
}
