package api

import (
	"fmt"
	"net/http"

	"github.com/agisilaos/skydesk/internal/model"
)

func (c *Client) Locations() ([]model.Location, error) {
	var out []model.Location
	if err := c.get("/locations/all", nil, &out, "Failed to fetch locations."); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLocation(draft model.Location) (model.Location, error) {
	var out model.Location
	if err := c.send(http.MethodPost, "/locations/add", nil, draft, &out, "Failed to add location."); err != nil {
		return model.Location{}, err
	}
	return out, nil
}

func (c *Client) UpdateLocation(id int64, patch model.Location) (model.Location, error) {
	var out model.Location
	path := fmt.Sprintf("/locations/update/%d", id)
	if err := c.send(http.MethodPut, path, nil, patch, &out, "Failed to update location."); err != nil {
		return model.Location{}, err
	}
	return out, nil
}

func (c *Client) DeleteLocation(id int64) error {
	path := fmt.Sprintf("/locations/delete/%d", id)
	return c.send(http.MethodDelete, path, nil, nil, nil, "Failed to delete location.")
}
