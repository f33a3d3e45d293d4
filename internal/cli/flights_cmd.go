package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/state"
)

func (a App) cmdFlights(g globalFlags, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "list":
		return a.flightsList(g, argv)
	case "search":
		return a.flightsSearch(g, argv)
	case "add":
		return a.flightsAdd(g, argv)
	case "update":
		return a.flightsUpdate(g, argv)
	case "delete":
		return a.flightsDelete(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "usage: skydesk flights <list|search|add|update|delete>")
	}
}

func (a App) flightsList(g globalFlags, args []string) error {
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	fs, lf := newListFlagSet("flights list", e.cfg.PageSize)
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	items, err := e.client.Flights()
	if err != nil {
		return wrapAPIError(err)
	}
	return writeFlightPage(g, items, lf)
}

func (a App) flightsSearch(g globalFlags, args []string) error {
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	fs, lf := newListFlagSet("flights search", e.cfg.PageSize)
	var q model.FlightQuery
	fs.StringVar(&q.OriginCode, "from", "", "Origin location code")
	fs.StringVar(&q.DestinationCode, "to", "", "Destination location code")
	fs.StringVar(&q.DepartureTime, "date", "", "Departure date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	items, err := e.client.SearchFlights(q)
	if err != nil {
		return wrapAPIError(err)
	}
	return writeFlightPage(g, items, lf)
}

func writeFlightPage(g globalFlags, items []model.Flight, lf *listFlags) error {
	list := state.NewFlights(lf.PageSize)
	list.Replace(items)
	list.Search(lf.Search)
	list.SetPage(lf.Page)

	page := list.PageItems()
	if g.JSON {
		return writeJSON(listPage[model.Flight]{
			Items:      page,
			Total:      len(list.Filtered()),
			Page:       list.Page(),
			TotalPages: list.TotalPages(),
			Search:     lf.Search,
		})
	}
	writePlainTableHeader("id", "number", "route", "departure", "status", "price")
	for _, f := range page {
		writePlainTableRow(
			strconv.FormatInt(f.FlightID, 10),
			f.FlightNumber,
			f.Origin.Code+"-"+f.Destination.Code,
			f.DepartureTime,
			f.Status,
			strconv.FormatFloat(f.Price, 'f', 2, 64),
		)
	}
	if !g.Quiet {
		fmt.Printf("page %d/%d (%d matching)\n", list.Page(), list.TotalPages(), len(list.Filtered()))
	}
	return nil
}

func newFlightFormFlagSet(name string, form *state.FlightForm) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&form.FlightNumber, "number", form.FlightNumber, "Flight number, e.g. VN123")
	fs.Int64Var(&form.OriginID, "origin-id", form.OriginID, "Origin location id")
	fs.Int64Var(&form.DestinationID, "destination-id", form.DestinationID, "Destination location id")
	fs.Int64Var(&form.AircraftID, "aircraft-id", form.AircraftID, "Aircraft id")
	fs.StringVar(&form.DepartureTime, "depart", form.DepartureTime, "Departure time, e.g. 2026-09-01T08:00")
	fs.StringVar(&form.ArrivalTime, "arrive", form.ArrivalTime, "Arrival time")
	fs.StringVar(&form.Price, "price", form.Price, "Ticket price")
	fs.StringVar(&form.EconomySeats, "economy", form.EconomySeats, "Available economy seats")
	fs.StringVar(&form.BusinessSeats, "business", form.BusinessSeats, "Available business seats")
	fs.StringVar(&form.Status, "status", form.Status, "SCHEDULED, CANCELLED or COMPLETED")
	return fs
}

func (a App) flightsAdd(g globalFlags, args []string) error {
	form := state.NewFlightForm()
	fs := newFlightFormFlagSet("flights add", &form)
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
	record, err := resolveFlightForm(e, form)
	if err != nil {
		return err
	}
	created, err := e.client.CreateFlight(record)
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(created)
	}
	if !g.Quiet {
		fmt.Printf("Flight %s added (id %d).\n", created.FlightNumber, created.FlightID)
	}
	return nil
}

func (a App) flightsUpdate(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk flights update <id> [flags]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return newExitError(ExitInvalidUsage, "invalid flight id %q", args[0])
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	flights, err := e.client.Flights()
	if err != nil {
		return wrapAPIError(err)
	}
	var form state.FlightForm
	found := false
	for _, f := range flights {
		if f.FlightID == id {
			form = state.EditFlightForm(f)
			found = true
			break
		}
	}
	if !found {
		return newExitError(ExitGenericFailure, "flight %d not found", id)
	}
	fs := newFlightFormFlagSet("flights update", &form)
	if err := fs.Parse(args[1:]); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if errs := form.Validate(); len(errs) > 0 {
		return validationError(errs)
	}
	record, err := resolveFlightForm(e, form)
	if err != nil {
		return err
	}
	updated, err := e.client.UpdateFlight(id, record)
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(updated)
	}
	if !g.Quiet {
		fmt.Printf("Flight %d updated.\n", id)
	}
	return nil
}

// resolveFlightForm turns selector IDs into full reference records, the same
// lookup the console does before a submit.
func resolveFlightForm(e env, form state.FlightForm) (model.Flight, error) {
	locations, err := e.client.Locations()
	if err != nil {
		return model.Flight{}, wrapAPIError(err)
	}
	fleet, err := e.client.Aircraft()
	if err != nil {
		return model.Flight{}, wrapAPIError(err)
	}
	record, errs := form.Resolve(locations, fleet)
	if len(errs) > 0 {
		return model.Flight{}, validationError(errs)
	}
	return record, nil
}

func (a App) flightsDelete(g globalFlags, args []string) error {
	id, force, err := parseDeleteArgs("flights delete", args)
	if err != nil {
		return err
	}
	if err := confirmDestructive(g, force, fmt.Sprintf("Delete flight %d?", id)); err != nil {
		return err
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	if err := e.client.DeleteFlight(id); err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(map[string]any{"status": "ok", "deleted": id})
	}
	if !g.Quiet {
		fmt.Printf("Flight %d deleted.\n", id)
	}
	return nil
}
