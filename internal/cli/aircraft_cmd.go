package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/state"
)

func (a App) cmdAircraft(g globalFlags, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "list":
		return a.aircraftList(g, argv)
	case "add":
		return a.aircraftAdd(g, argv)
	case "update":
		return a.aircraftUpdate(g, argv)
	case "delete":
		return a.aircraftDelete(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "usage: skydesk aircraft <list|add|update|delete>")
	}
}

func (a App) aircraftList(g globalFlags, args []string) error {
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	fs, lf := newListFlagSet("aircraft list", e.cfg.PageSize)
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}

	items, err := e.client.Aircraft()
	if err != nil {
		return wrapAPIError(err)
	}
	list := state.NewAircraft(lf.PageSize)
	list.Replace(items)
	list.Search(lf.Search)
	list.SetPage(lf.Page)

	page := list.PageItems()
	if g.JSON {
		return writeJSON(listPage[model.Aircraft]{
			Items:      page,
			Total:      len(list.Filtered()),
			Page:       list.Page(),
			TotalPages: list.TotalPages(),
			Search:     lf.Search,
		})
	}
	writePlainTableHeader("id", "code", "manufacturer", "model", "economy", "business")
	for _, ac := range page {
		writePlainTableRow(
			strconv.FormatInt(ac.ID, 10), ac.AircraftCode, ac.Manufacturer, ac.Model,
			strconv.Itoa(ac.EconomyCapacity), strconv.Itoa(ac.BusinessCapacity),
		)
	}
	if !g.Quiet {
		fmt.Printf("page %d/%d (%d matching)\n", list.Page(), list.TotalPages(), len(list.Filtered()))
	}
	return nil
}

func newAircraftFormFlagSet(name string, form *state.AircraftForm) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&form.AircraftCode, "code", form.AircraftCode, "Aircraft code, e.g. A321")
	fs.StringVar(&form.Manufacturer, "manufacturer", form.Manufacturer, "Manufacturer")
	fs.StringVar(&form.Model, "model", form.Model, "Model name")
	fs.StringVar(&form.EconomyCapacity, "economy", form.EconomyCapacity, "Economy seat capacity")
	fs.StringVar(&form.BusinessCapacity, "business", form.BusinessCapacity, "Business seat capacity")
	return fs
}

func (a App) aircraftAdd(g globalFlags, args []string) error {
	form := state.NewAircraftForm()
	fs := newAircraftFormFlagSet("aircraft add", &form)
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if errs := form.Validate(); len(errs) > 0 {
		return validationError(errs)
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	created, err := e.client.CreateAircraft(form.Record())
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(created)
	}
	if !g.Quiet {
		fmt.Printf("Aircraft %s added (id %d).\n", created.AircraftCode, created.ID)
	}
	return nil
}

func (a App) aircraftUpdate(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk aircraft update <id> [flags]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return newExitError(ExitInvalidUsage, "invalid aircraft id %q", args[0])
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	items, err := e.client.Aircraft()
	if err != nil {
		return wrapAPIError(err)
	}
	var form state.AircraftForm
	found := false
	for _, ac := range items {
		if ac.ID == id {
			form = state.EditAircraftForm(ac)
			found = true
			break
		}
	}
	if !found {
		return newExitError(ExitGenericFailure, "aircraft %d not found", id)
	}
	fs := newAircraftFormFlagSet("aircraft update", &form)
	if err := fs.Parse(args[1:]); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if errs := form.Validate(); len(errs) > 0 {
		return validationError(errs)
	}
	updated, err := e.client.UpdateAircraft(id, form.Record())
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(updated)
	}
	if !g.Quiet {
		fmt.Printf("Aircraft %d updated.\n", id)
	}
	return nil
}

func (a App) aircraftDelete(g globalFlags, args []string) error {
	id, force, err := parseDeleteArgs("aircraft delete", args)
	if err != nil {
		return err
	}
	if err := confirmDestructive(g, force, fmt.Sprintf("Delete aircraft %d?", id)); err != nil {
		return err
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	if err := e.client.DeleteAircraft(id); err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(map[string]any{"status": "ok", "deleted": id})
	}
	if !g.Quiet {
		fmt.Printf("Aircraft %d deleted.\n", id)
	}
	return nil
}
