package state

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/agisilaos/skydesk/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// requiredErrors runs tag validation and maps failures to form field keys
// ("locationName") with display messages ("Location Name is required").
func requiredErrors(form any) map[string]string {
	errs := map[string]string{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs[fieldKey(fe.Field())] = fieldLabel(fe.Field()) + " is required"
		}
	}
	return errs
}

func fieldKey(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldLabel(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nonNegativeInt(errs map[string]string, key, label, value string) int {
	if _, taken := errs[key]; taken {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		errs[key] = label + " must be a non-negative number"
		return 0
	}
	return n
}

// LocationForm carries the dialog's field values as typed. DraftKey is a
// client-only identity for the dialog instance: a save echo carries it back,
// so an echo from an abandoned dialog cannot complete the one open now. The
// backend assigns the real ID.
type LocationForm struct {
	ID           int64
	DraftKey     string
	Code         string `validate:"required"`
	LocationName string `validate:"required"`
	AirportName  string `validate:"required"`
}

func NewLocationForm() LocationForm {
	return LocationForm{DraftKey: uuid.NewString()}
}

func EditLocationForm(l model.Location) LocationForm {
	return LocationForm{
		ID:           l.ID,
		DraftKey:     uuid.NewString(),
		Code:         l.Code,
		LocationName: l.LocationName,
		AirportName:  l.AirportName,
	}
}

func (f LocationForm) Validate() map[string]string {
	return requiredErrors(f)
}

func (f LocationForm) Record() model.Location {
	return model.Location{
		ID:           f.ID,
		Code:         strings.ToUpper(strings.TrimSpace(f.Code)),
		LocationName: strings.TrimSpace(f.LocationName),
		AirportName:  strings.TrimSpace(f.AirportName),
	}
}

type AircraftForm struct {
	ID               int64
	DraftKey         string
	AircraftCode     string `validate:"required"`
	Manufacturer     string `validate:"required"`
	Model            string `validate:"required"`
	EconomyCapacity  string `validate:"required"`
	BusinessCapacity string `validate:"required"`
}

func NewAircraftForm() AircraftForm {
	return AircraftForm{DraftKey: uuid.NewString()}
}

func EditAircraftForm(a model.Aircraft) AircraftForm {
	return AircraftForm{
		ID:               a.ID,
		DraftKey:         uuid.NewString(),
		AircraftCode:     a.AircraftCode,
		Manufacturer:     a.Manufacturer,
		Model:            a.Model,
		EconomyCapacity:  strconv.Itoa(a.EconomyCapacity),
		BusinessCapacity: strconv.Itoa(a.BusinessCapacity),
	}
}

func (f AircraftForm) Validate() map[string]string {
	errs := requiredErrors(f)
	nonNegativeInt(errs, "economyCapacity", "Economy Capacity", f.EconomyCapacity)
	nonNegativeInt(errs, "businessCapacity", "Business Capacity", f.BusinessCapacity)
	return errs
}

func (f AircraftForm) Record() model.Aircraft {
	economy, _ := strconv.Atoi(strings.TrimSpace(f.EconomyCapacity))
	business, _ := strconv.Atoi(strings.TrimSpace(f.BusinessCapacity))
	return model.Aircraft{
		ID:               f.ID,
		AircraftCode:     strings.ToUpper(strings.TrimSpace(f.AircraftCode)),
		Manufacturer:     strings.TrimSpace(f.Manufacturer),
		Model:            strings.TrimSpace(f.Model),
		EconomyCapacity:  economy,
		BusinessCapacity: business,
	}
}

// FlightForm references origin, destination and aircraft by their real IDs
// chosen from selectors; display labels are never parsed back into records.
type FlightForm struct {
	FlightID      int64
	DraftKey      string
	Editing       bool
	FlightNumber  string `validate:"required"`
	OriginID      int64
	DestinationID int64
	AircraftID    int64
	DepartureTime string
	ArrivalTime   string
	Price         string `validate:"required"`
	EconomySeats  string `validate:"required"`
	BusinessSeats string `validate:"required"`
	Status        string `validate:"required"`
}

func NewFlightForm() FlightForm {
	return FlightForm{DraftKey: uuid.NewString(), Status: model.FlightScheduled}
}

func EditFlightForm(f model.Flight) FlightForm {
	return FlightForm{
		FlightID:      f.FlightID,
		DraftKey:      uuid.NewString(),
		Editing:       true,
		FlightNumber:  f.FlightNumber,
		OriginID:      f.Origin.ID,
		DestinationID: f.Destination.ID,
		AircraftID:    f.Aircraft.ID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Price:         strconv.FormatFloat(f.Price, 'f', -1, 64),
		EconomySeats:  strconv.Itoa(f.AvailableEconomySeats),
		BusinessSeats: strconv.Itoa(f.AvailableBusinessSeats),
		Status:        f.Status,
	}
}

func (f FlightForm) Validate() map[string]string {
	return f.ValidateAt(time.Now())
}

func (f FlightForm) ValidateAt(now time.Time) map[string]string {
	errs := requiredErrors(f)
	if f.OriginID == 0 {
		errs["origin"] = "Origin is required"
	}
	if f.DestinationID == 0 {
		errs["destination"] = "Destination is required"
	} else if f.OriginID != 0 && f.OriginID == f.DestinationID {
		errs["destination"] = "Destination must differ from origin"
	}
	if f.AircraftID == 0 {
		errs["aircraft"] = "Aircraft is required"
	}

	var dep time.Time
	depOK := false
	switch {
	case strings.TrimSpace(f.DepartureTime) == "":
		errs["departureTime"] = "Departure Time is required"
	default:
		var err error
		if dep, err = model.ParseTime(f.DepartureTime); err != nil {
			errs["departureTime"] = "Departure Time is invalid"
		} else if !f.Editing && dep.Before(now) {
			errs["departureTime"] = "Departure Time must be in the future"
		} else {
			depOK = true
		}
	}

	switch {
	case strings.TrimSpace(f.ArrivalTime) == "":
		errs["arrivalTime"] = "Arrival Time is required"
	default:
		arr, err := model.ParseTime(f.ArrivalTime)
		if err != nil {
			errs["arrivalTime"] = "Arrival Time is invalid"
		} else if depOK && !arr.After(dep) {
			errs["arrivalTime"] = "Arrival Time must be after Departure Time"
		}
	}

	if _, taken := errs["price"]; !taken {
		if p, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64); err != nil || p < 0 {
			errs["price"] = "Price must be a non-negative number"
		}
	}
	nonNegativeInt(errs, "economySeats", "Economy Seats", f.EconomySeats)
	nonNegativeInt(errs, "businessSeats", "Business Seats", f.BusinessSeats)
	return errs
}

// Resolve builds the wire record from the current reference collections.
// A selection whose ID no longer resolves is a field error, not a panic: the
// record may have been deleted since the selector was populated.
func (f FlightForm) Resolve(locations []model.Location, fleet []model.Aircraft) (model.Flight, map[string]string) {
	errs := map[string]string{}
	findLocation := func(id int64) (model.Location, bool) {
		for _, l := range locations {
			if l.ID == id {
				return l, true
			}
		}
		return model.Location{}, false
	}

	origin, ok := findLocation(f.OriginID)
	if !ok {
		errs["origin"] = "Origin selection no longer exists"
	}
	destination, ok := findLocation(f.DestinationID)
	if !ok {
		errs["destination"] = "Destination selection no longer exists"
	}
	var aircraft model.Aircraft
	found := false
	for _, a := range fleet {
		if a.ID == f.AircraftID {
			aircraft = a
			found = true
			break
		}
	}
	if !found {
		errs["aircraft"] = "Aircraft selection no longer exists"
	}
	if len(errs) > 0 {
		return model.Flight{}, errs
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	economy, _ := strconv.Atoi(strings.TrimSpace(f.EconomySeats))
	business, _ := strconv.Atoi(strings.TrimSpace(f.BusinessSeats))
	return model.Flight{
		FlightID:               f.FlightID,
		FlightNumber:           strings.ToUpper(strings.TrimSpace(f.FlightNumber)),
		Origin:                 origin,
		Destination:            destination,
		DepartureTime:          strings.TrimSpace(f.DepartureTime),
		ArrivalTime:            strings.TrimSpace(f.ArrivalTime),
		Price:                  price,
		AvailableEconomySeats:  economy,
		AvailableBusinessSeats: business,
		Status:                 f.Status,
		Aircraft:               aircraft,
	}, nil
}

type NewsForm struct {
	ID       int64
	DraftKey string
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	Status   string
}

func NewNewsForm() NewsForm {
	return NewsForm{DraftKey: uuid.NewString(), Status: model.NewsDraft}
}

func EditNewsForm(n model.News) NewsForm {
	return NewsForm{
		ID:       n.ID,
		DraftKey: uuid.NewString(),
		Title:    n.Title,
		Content:  n.Content,
		Status:   n.Status,
	}
}

func (f NewsForm) Validate() map[string]string {
	return requiredErrors(f)
}

func (f NewsForm) Record() model.News {
	status := f.Status
	if status == "" {
		status = model.NewsDraft
	}
	return model.News{
		ID:      f.ID,
		Title:   strings.TrimSpace(f.Title),
		Content: strings.TrimSpace(f.Content),
		Status:  status,
	}
}
