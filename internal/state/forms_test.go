package state

import (
	"testing"
	"time"

	"github.com/agisilaos/skydesk/internal/model"
)

func TestLocationFormRequiredFields(t *testing.T) {
	errs := LocationForm{Code: "HAN"}.Validate()
	if errs["locationName"] != "Location Name is required" {
		t.Fatalf("locationName error = %q", errs["locationName"])
	}
	if errs["airportName"] == "" {
		t.Fatalf("expected airportName error, got %v", errs)
	}
	if _, ok := errs["code"]; ok {
		t.Fatalf("code was provided, got error anyway: %v", errs)
	}
}

func TestLocationFormRecordNormalizes(t *testing.T) {
	rec := LocationForm{Code: " han ", LocationName: " Hanoi ", AirportName: "Noi Bai"}.Record()
	if rec.Code != "HAN" || rec.LocationName != "Hanoi" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestAircraftFormCapacityMustBeNumeric(t *testing.T) {
	f := AircraftForm{
		AircraftCode:     "A321",
		Manufacturer:     "Airbus",
		Model:            "A321neo",
		EconomyCapacity:  "abc",
		BusinessCapacity: "-2",
	}
	errs := f.Validate()
	if errs["economyCapacity"] != "Economy Capacity must be a non-negative number" {
		t.Fatalf("economyCapacity error = %q", errs["economyCapacity"])
	}
	if errs["businessCapacity"] == "" {
		t.Fatalf("negative capacity should fail: %v", errs)
	}
}

func TestAircraftFormEmptyCapacityIsRequiredNotNumeric(t *testing.T) {
	f := AircraftForm{AircraftCode: "A321", Manufacturer: "Airbus", Model: "A321neo"}
	errs := f.Validate()
	if errs["economyCapacity"] != "Economy Capacity is required" {
		t.Fatalf("empty capacity should report required, got %q", errs["economyCapacity"])
	}
}

func validFlightForm() FlightForm {
	return FlightForm{
		FlightNumber:  "VN123",
		OriginID:      1,
		DestinationID: 2,
		AircraftID:    5,
		DepartureTime: "2027-03-01T08:00",
		ArrivalTime:   "2027-03-01T10:00",
		Price:         "120.50",
		EconomySeats:  "150",
		BusinessSeats: "20",
		Status:        model.FlightScheduled,
	}
}

func TestFlightFormValidPassesAllRules(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if errs := validFlightForm().ValidateAt(now); len(errs) != 0 {
		t.Fatalf("expected clean form, got %v", errs)
	}
}

func TestFlightFormOriginMustDifferFromDestination(t *testing.T) {
	f := validFlightForm()
	f.DestinationID = f.OriginID
	errs := f.ValidateAt(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	if errs["destination"] != "Destination must differ from origin" {
		t.Fatalf("destination error = %q", errs["destination"])
	}
}

func TestFlightFormDepartureInPastBlocksNewFlights(t *testing.T) {
	now := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	f := validFlightForm()
	errs := f.ValidateAt(now)
	if errs["departureTime"] != "Departure Time must be in the future" {
		t.Fatalf("departureTime error = %q", errs["departureTime"])
	}

	f.Editing = true
	if errs := f.ValidateAt(now); errs["departureTime"] != "" {
		t.Fatalf("past departure should be allowed when editing, got %q", errs["departureTime"])
	}
}

func TestFlightFormArrivalMustFollowDeparture(t *testing.T) {
	f := validFlightForm()
	f.ArrivalTime = f.DepartureTime
	errs := f.ValidateAt(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	if errs["arrivalTime"] != "Arrival Time must be after Departure Time" {
		t.Fatalf("arrivalTime error = %q", errs["arrivalTime"])
	}
}

func TestFlightFormResolveByRealIDs(t *testing.T) {
	locations := []model.Location{
		{ID: 1, Code: "HAN", LocationName: "Hanoi"},
		{ID: 2, Code: "SGN", LocationName: "Ho Chi Minh City"},
	}
	fleet := []model.Aircraft{{ID: 5, AircraftCode: "A321"}}

	rec, errs := validFlightForm().Resolve(locations, fleet)
	if errs != nil {
		t.Fatalf("resolve: %v", errs)
	}
	if rec.Origin.Code != "HAN" || rec.Destination.Code != "SGN" || rec.Aircraft.ID != 5 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Price != 120.50 || rec.AvailableEconomySeats != 150 {
		t.Fatalf("numeric fields not parsed: %+v", rec)
	}
}

func TestFlightFormResolveFailsOnDeletedReference(t *testing.T) {
	locations := []model.Location{{ID: 1, Code: "HAN"}}
	_, errs := validFlightForm().Resolve(locations, nil)
	if errs["destination"] == "" || errs["aircraft"] == "" {
		t.Fatalf("stale references should surface as field errors, got %v", errs)
	}
}

func TestEditFlightFormCarriesReferenceIDs(t *testing.T) {
	f := EditFlightForm(model.Flight{
		FlightID:    7,
		Origin:      model.Location{ID: 1},
		Destination: model.Location{ID: 2},
		Aircraft:    model.Aircraft{ID: 5},
		Price:       99,
	})
	if !f.Editing || f.OriginID != 1 || f.DestinationID != 2 || f.AircraftID != 5 {
		t.Fatalf("unexpected form: %+v", f)
	}
	if f.Price != "99" {
		t.Fatalf("price rendered as %q", f.Price)
	}
}

func TestNewsFormDefaultsToDraft(t *testing.T) {
	f := NewNewsForm()
	if f.Status != model.NewsDraft {
		t.Fatalf("status = %q", f.Status)
	}
	if f.DraftKey == "" {
		t.Fatalf("draft key missing")
	}
	errs := f.Validate()
	if errs["title"] == "" || errs["content"] == "" {
		t.Fatalf("expected required errors, got %v", errs)
	}
}
