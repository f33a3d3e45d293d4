package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/state"
)

func (a App) cmdLocations(g globalFlags, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "list":
		return a.locationsList(g, argv)
	case "add":
		return a.locationsAdd(g, argv)
	case "update":
		return a.locationsUpdate(g, argv)
	case "delete":
		return a.locationsDelete(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "usage: skydesk locations <list|add|update|delete>")
	}
}

func (a App) locationsList(g globalFlags, args []string) error {
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	fs, lf := newListFlagSet("locations list", e.cfg.PageSize)
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}

	items, err := e.client.Locations()
	if err != nil {
		return wrapAPIError(err)
	}
	list := state.NewLocations(lf.PageSize)
	list.Replace(items)
	list.Search(lf.Search)
	list.SetPage(lf.Page)

	page := list.PageItems()
	if g.JSON {
		return writeJSON(listPage[model.Location]{
			Items:      page,
			Total:      len(list.Filtered()),
			Page:       list.Page(),
			TotalPages: list.TotalPages(),
			Search:     lf.Search,
		})
	}
	writePlainTableHeader("id", "code", "name", "airport")
	for _, l := range page {
		writePlainTableRow(strconv.FormatInt(l.ID, 10), l.Code, l.LocationName, l.AirportName)
	}
	if !g.Quiet {
		fmt.Printf("page %d/%d (%d matching)\n", list.Page(), list.TotalPages(), len(list.Filtered()))
	}
	return nil
}

func newLocationFormFlagSet(name string, form *state.LocationForm) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&form.Code, "code", form.Code, "Location code, e.g. HAN")
	fs.StringVar(&form.LocationName, "name", form.LocationName, "City or location name")
	fs.StringVar(&form.AirportName, "airport", form.AirportName, "Airport name")
	return fs
}

func (a App) locationsAdd(g globalFlags, args []string) error {
	form := state.NewLocationForm()
	fs := newLocationFormFlagSet("locations add", &form)
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
	created, err := e.client.CreateLocation(form.Record())
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(created)
	}
	if !g.Quiet {
		fmt.Printf("Location %s added (id %d).\n", created.Code, created.ID)
	}
	return nil
}

func (a App) locationsUpdate(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk locations update <id> [flags]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return newExitError(ExitInvalidUsage, "invalid location id %q", args[0])
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	items, err := e.client.Locations()
	if err != nil {
		return wrapAPIError(err)
	}
	var form state.LocationForm
	found := false
	for _, l := range items {
		if l.ID == id {
			form = state.EditLocationForm(l)
			found = true
			break
		}
	}
	if !found {
		return newExitError(ExitGenericFailure, "location %d not found", id)
	}
	fs := newLocationFormFlagSet("locations update", &form)
	if err := fs.Parse(args[1:]); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if errs := form.Validate(); len(errs) > 0 {
		return validationError(errs)
	}
	updated, err := e.client.UpdateLocation(id, form.Record())
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(updated)
	}
	if !g.Quiet {
		fmt.Printf("Location %d updated.\n", id)
	}
	return nil
}

func (a App) locationsDelete(g globalFlags, args []string) error {
	id, force, err := parseDeleteArgs("locations delete", args)
	if err != nil {
		return err
	}
	if err := confirmDestructive(g, force, fmt.Sprintf("Delete location %d?", id)); err != nil {
		return err
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	if err := e.client.DeleteLocation(id); err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(map[string]any{"status": "ok", "deleted": id})
	}
	if !g.Quiet {
		fmt.Printf("Location %d deleted.\n", id)
	}
	return nil
}
