package state

import (
	"strconv"
	"strings"

	"github.com/agisilaos/skydesk/internal/model"
)

func matchAny(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func NewLocations(pageSize int) *Collection[model.Location] {
	return NewCollection(
		func(l model.Location) string { return strconv.FormatInt(l.ID, 10) },
		func(l model.Location, term string) bool {
			return matchAny(term, l.Code, l.LocationName, l.AirportName)
		},
		pageSize,
	)
}

func NewAircraft(pageSize int) *Collection[model.Aircraft] {
	return NewCollection(
		func(a model.Aircraft) string { return strconv.FormatInt(a.ID, 10) },
		func(a model.Aircraft, term string) bool {
			return matchAny(term, a.AircraftCode, a.Manufacturer, a.Model)
		},
		pageSize,
	)
}

func NewFlights(pageSize int) *Collection[model.Flight] {
	return NewCollection(
		func(f model.Flight) string { return strconv.FormatInt(f.FlightID, 10) },
		func(f model.Flight, term string) bool {
			return matchAny(term, f.FlightNumber, f.Origin.Code, f.Destination.Code, f.Status)
		},
		pageSize,
	)
}

func NewBookings(pageSize int) *Collection[model.Booking] {
	return NewCollection(
		func(b model.Booking) string { return strconv.FormatInt(b.BookingID, 10) },
		func(b model.Booking, term string) bool {
			return matchAny(term, b.PassengerName, b.BookingNumber, b.FlightNumber)
		},
		pageSize,
	)
}

func NewNews(pageSize int) *Collection[model.News] {
	return NewCollection(
		func(n model.News) string { return strconv.FormatInt(n.ID, 10) },
		func(n model.News, term string) bool {
			return matchAny(term, n.Title, n.Status)
		},
		pageSize,
	)
}
