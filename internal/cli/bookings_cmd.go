package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/state"
)

func (a App) cmdBookings(g globalFlags, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "list":
		return a.bookingsList(g, argv)
	case "confirm":
		return a.bookingsTransition(g, argv, "confirm")
	case "cancel":
		return a.bookingsTransition(g, argv, "cancel")
	case "purge-cancelled":
		return a.bookingsPurge(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "usage: skydesk bookings <list|confirm|cancel|purge-cancelled>")
	}
}

func (a App) bookingsList(g globalFlags, args []string) error {
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	fs, lf := newListFlagSet("bookings list", e.cfg.PageSize)
	status := fs.String("status", "", "Filter by status: PENDING, CONFIRMED or CANCELLED")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}

	items, err := e.client.Bookings()
	if err != nil {
		return wrapAPIError(err)
	}
	if *status != "" {
		filtered := items[:0]
		for _, b := range items {
			if b.Status == *status {
				filtered = append(filtered, b)
			}
		}
		items = filtered
	}
	list := state.NewBookings(lf.PageSize)
	list.Replace(items)
	list.Search(lf.Search)
	list.SetPage(lf.Page)

	page := list.PageItems()
	if g.JSON {
		return writeJSON(listPage[model.Booking]{
			Items:      page,
			Total:      len(list.Filtered()),
			Page:       list.Page(),
			TotalPages: list.TotalPages(),
			Search:     lf.Search,
		})
	}
	writePlainTableHeader("id", "number", "passenger", "flight", "route", "status")
	for _, b := range page {
		writePlainTableRow(
			strconv.FormatInt(b.BookingID, 10),
			b.BookingNumber,
			b.PassengerName,
			b.FlightNumber,
			b.OriginCode+"-"+b.DestinationCode,
			b.Status,
		)
	}
	if !g.Quiet {
		fmt.Printf("page %d/%d (%d matching)\n", list.Page(), list.TotalPages(), len(list.Filtered()))
	}
	return nil
}

// bookingsTransition moves one PENDING booking to CONFIRMED or CANCELLED.
// The backend validates the transition; the CLI only refuses obviously wrong
// input.
func (a App) bookingsTransition(g globalFlags, args []string, action string) error {
	if len(args) != 1 {
		return newExitError(ExitInvalidUsage, "usage: skydesk bookings %s <id>", action)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return newExitError(ExitInvalidUsage, "invalid booking id %q", args[0])
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	if action == "confirm" {
		err = e.client.ConfirmBooking(id)
	} else {
		err = e.client.CancelBooking(id)
	}
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(map[string]any{"status": "ok", "booking": id, "action": action})
	}
	if !g.Quiet {
		fmt.Printf("Booking %d %sed.\n", id, action)
	}
	return nil
}

func (a App) bookingsPurge(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("bookings purge-cancelled", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	force := fs.Bool("force", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if len(fs.Args()) != 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk bookings purge-cancelled [--force]")
	}
	if err := confirmDestructive(g, *force, "Delete all cancelled bookings?"); err != nil {
		return err
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	if err := e.client.DeleteCancelledBookings(); err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(map[string]string{"status": "ok"})
	}
	if !g.Quiet {
		fmt.Println("Cancelled bookings deleted.")
	}
	return nil
}
