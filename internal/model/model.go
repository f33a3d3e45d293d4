package model

import (
	"fmt"
	"strings"
	"time"
)

// Flight lifecycle states as reported by the backend.
const (
	FlightScheduled = "SCHEDULED"
	FlightCancelled = "CANCELLED"
	FlightCompleted = "COMPLETED"
)

// Booking lifecycle states. PENDING may move to CONFIRMED or CANCELLED;
// CANCELLED records are purgeable in bulk.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// News lifecycle states. DRAFT -> PUBLISHED is one way.
const (
	NewsDraft     = "DRAFT"
	NewsPublished = "PUBLISHED"
)

var FlightStatuses = []string{FlightScheduled, FlightCancelled, FlightCompleted}

type Location struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	LocationName string `json:"locationName"`
	AirportName  string `json:"airportName"`
}

// Label is the render-time display form of a location reference. The real
// identifier travels separately; this string is never parsed back.
func (l Location) Label() string {
	return fmt.Sprintf("%s (%s)", l.LocationName, l.Code)
}

type Aircraft struct {
	ID               int64  `json:"id"`
	AircraftCode     string `json:"aircraftCode"`
	Manufacturer     string `json:"manufacturer"`
	Model            string `json:"model"`
	EconomyCapacity  int    `json:"economyCapacity"`
	BusinessCapacity int    `json:"businessCapacity"`
}

func (a Aircraft) Label() string {
	return strings.TrimSpace(fmt.Sprintf("%s (%s)", a.AircraftCode, a.Manufacturer))
}

type Flight struct {
	FlightID               int64    `json:"flightId"`
	FlightNumber           string   `json:"flightNumber"`
	Origin                 Location `json:"origin"`
	Destination            Location `json:"destination"`
	DepartureTime          string   `json:"departureTime"`
	ArrivalTime            string   `json:"arrivalTime"`
	Price                  float64  `json:"price"`
	AvailableEconomySeats  int      `json:"availableEconomySeats"`
	AvailableBusinessSeats int      `json:"availableBusinessSeats"`
	Status                 string   `json:"status"`
	Aircraft               Aircraft `json:"aircraft"`
	CreatedAt              string   `json:"createdAt,omitempty"`
}

type Booking struct {
	BookingID       int64   `json:"bookingId"`
	BookingNumber   string  `json:"bookingNumber"`
	PassengerName   string  `json:"passengerName"`
	Email           string  `json:"email"`
	PhoneNumber     string  `json:"phoneNumber"`
	FlightNumber    string  `json:"flightNumber"`
	OriginName      string  `json:"originName"`
	OriginCode      string  `json:"originCode"`
	DestinationName string  `json:"destinationName"`
	DestinationCode string  `json:"destinationCode"`
	DepartureTime   string  `json:"departureTime"`
	ArrivalTime     string  `json:"arrivalTime"`
	TicketClass     string  `json:"ticketClass"`
	TotalPeople     int     `json:"totalPeople"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	PDFs            string  `json:"pdfs,omitempty"`
}

type News struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// FlightQuery mirrors GET /flights/search parameters.
type FlightQuery struct {
	OriginCode      string `json:"originCode"`
	DestinationCode string `json:"destinationCode"`
	DepartureTime   string `json:"departureTime"`
}

// Overview aggregates dashboard statistics computed client-side from the
// fetched collections; the backend does not expose a stats endpoint.
type Overview struct {
	Locations         int     `json:"locations"`
	Aircraft          int     `json:"aircraft"`
	Flights           int     `json:"flights"`
	ScheduledFlights  int     `json:"scheduled_flights"`
	Bookings          int     `json:"bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	ConfirmedRevenue  float64 `json:"confirmed_revenue"`
	News              int     `json:"news"`
	PublishedNews     int     `json:"published_news"`
}

func BuildOverview(locations []Location, aircraft []Aircraft, flights []Flight, bookings []Booking, news []News) Overview {
	o := Overview{
		Locations: len(locations),
		Aircraft:  len(aircraft),
		Flights:   len(flights),
		Bookings:  len(bookings),
		News:      len(news),
	}
	for _, f := range flights {
		if f.Status == FlightScheduled {
			o.ScheduledFlights++
		}
	}
	for _, b := range bookings {
		switch b.Status {
		case BookingPending:
			o.PendingBookings++
		case BookingConfirmed:
			o.ConfirmedBookings++
			o.ConfirmedRevenue += b.Price
		case BookingCancelled:
			o.CancelledBookings++
		}
	}
	for _, n := range news {
		if n.Status == NewsPublished {
			o.PublishedNews++
		}
	}
	return o
}

// ParseTime accepts the two timestamp shapes the backend and the datetime
// inputs produce: RFC 3339 and the bare "2006-01-02T15:04" form.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", value)
}
