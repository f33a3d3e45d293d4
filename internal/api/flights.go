package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/agisilaos/skydesk/internal/model"
)

func (c *Client) Flights() ([]model.Flight, error) {
	var out []model.Flight
	if err := c.get("/flights/all", nil, &out, "Failed to fetch flights."); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchFlights queries by route and departure date; empty fields are sent
// blank, matching the backend's contract.
func (c *Client) SearchFlights(q model.FlightQuery) ([]model.Flight, error) {
	params := url.Values{}
	params.Set("originCode", q.OriginCode)
	params.Set("destinationCode", q.DestinationCode)
	params.Set("departureTime", q.DepartureTime)
	var out []model.Flight
	if err := c.get("/flights/search", params, &out, "Failed to search flights."); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateFlight(draft model.Flight) (model.Flight, error) {
	var out model.Flight
	if err := c.send(http.MethodPost, "/flights/add", nil, draft, &out, "Failed to add flight."); err != nil {
		return model.Flight{}, err
	}
	return out, nil
}

func (c *Client) UpdateFlight(id int64, patch model.Flight) (model.Flight, error) {
	var out model.Flight
	path := fmt.Sprintf("/flights/update/%d", id)
	if err := c.send(http.MethodPut, path, nil, patch, &out, "Failed to update flight."); err != nil {
		return model.Flight{}, err
	}
	return out, nil
}

func (c *Client) DeleteFlight(id int64) error {
	path := fmt.Sprintf("/flights/delete/%d", id)
	return c.send(http.MethodDelete, path, nil, nil, nil, "Failed to delete flight.")
}
