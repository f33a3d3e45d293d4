package model

import (
	"testing"
	"time"
)

func TestLocationLabel(t *testing.T) {
	l := Location{ID: 1, Code: "HAN", LocationName: "Hanoi", AirportName: "Noi Bai International"}
	if got := l.Label(); got != "Hanoi (HAN)" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestAircraftLabelTrimsEmptyManufacturer(t *testing.T) {
	a := Aircraft{AircraftCode: "VN-A321", Manufacturer: "Airbus"}
	if got := a.Label(); got != "VN-A321 (Airbus)" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestParseTimeAcceptsInputAndBackendForms(t *testing.T) {
	cases := []string{
		"2025-06-01T08:00",
		"2025-06-01T08:00:00",
		"2025-06-01T08:00:00Z",
	}
	for _, c := range cases {
		got, err := ParseTime(c)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", c, err)
		}
		want := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("ParseTime(%q) = %v, want %v", c, got, want)
		}
	}
	if _, err := ParseTime(""); err == nil {
		t.Fatalf("expected error for empty value")
	}
}

func TestBuildOverview(t *testing.T) {
	locations := []Location{{ID: 1}, {ID: 2}}
	flights := []Flight{
		{FlightID: 1, Status: FlightScheduled},
		{FlightID: 2, Status: FlightCompleted},
	}
	bookings := []Booking{
		{BookingID: 1, Status: BookingPending, Price: 100},
		{BookingID: 2, Status: BookingConfirmed, Price: 250},
		{BookingID: 3, Status: BookingConfirmed, Price: 150},
		{BookingID: 4, Status: BookingCancelled, Price: 75},
	}
	news := []News{{ID: 1, Status: NewsDraft}, {ID: 2, Status: NewsPublished}}

	o := BuildOverview(locations, nil, flights, bookings, news)
	if o.Locations != 2 || o.Flights != 2 || o.ScheduledFlights != 1 {
		t.Fatalf("unexpected flight/location counts: %+v", o)
	}
	if o.PendingBookings != 1 || o.ConfirmedBookings != 2 || o.CancelledBookings != 1 {
		t.Fatalf("unexpected booking counts: %+v", o)
	}
	if o.ConfirmedRevenue != 400 {
		t.Fatalf("expected revenue over confirmed bookings only, got %v", o.ConfirmedRevenue)
	}
	if o.PublishedNews != 1 {
		t.Fatalf("expected 1 published news, got %d", o.PublishedNews)
	}
}
