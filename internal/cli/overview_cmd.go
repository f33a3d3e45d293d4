package cli

import (
	"fmt"

	"github.com/agisilaos/skydesk/internal/model"
)

func (a App) cmdOverview(g globalFlags, args []string) error {
	if len(args) != 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk overview")
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	locations, err := e.client.Locations()
	if err != nil {
		return wrapAPIError(err)
	}
	fleet, err := e.client.Aircraft()
	if err != nil {
		return wrapAPIError(err)
	}
	flights, err := e.client.Flights()
	if err != nil {
		return wrapAPIError(err)
	}
	bookings, err := e.client.Bookings()
	if err != nil {
		return wrapAPIError(err)
	}
	news, err := e.client.News()
	if err != nil {
		return wrapAPIError(err)
	}
	overview := model.BuildOverview(locations, fleet, flights, bookings, news)
	if g.JSON {
		return writeJSON(overview)
	}
	writePlainKV(
		"locations", fmt.Sprint(overview.Locations),
		"aircraft", fmt.Sprint(overview.Aircraft),
		"flights", fmt.Sprint(overview.Flights),
		"scheduled_flights", fmt.Sprint(overview.ScheduledFlights),
		"bookings", fmt.Sprint(overview.Bookings),
		"pending_bookings", fmt.Sprint(overview.PendingBookings),
		"confirmed_bookings", fmt.Sprint(overview.ConfirmedBookings),
		"cancelled_bookings", fmt.Sprint(overview.CancelledBookings),
		"confirmed_revenue", fmt.Sprintf("%.2f", overview.ConfirmedRevenue),
		"news", fmt.Sprint(overview.News),
		"published_news", fmt.Sprint(overview.PublishedNews),
	)
	return nil
}
