package api

import (
	"fmt"
	"net/http"

	"github.com/agisilaos/skydesk/internal/model"
)

func (c *Client) Aircraft() ([]model.Aircraft, error) {
	var out []model.Aircraft
	if err := c.get("/aircrafts/all", nil, &out, "Failed to fetch aircrafts."); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAircraft(draft model.Aircraft) (model.Aircraft, error) {
	var out model.Aircraft
	if err := c.send(http.MethodPost, "/aircrafts/add", nil, draft, &out, "Failed to add aircraft."); err != nil {
		return model.Aircraft{}, err
	}
	return out, nil
}

func (c *Client) UpdateAircraft(id int64, patch model.Aircraft) (model.Aircraft, error) {
	var out model.Aircraft
	path := fmt.Sprintf("/aircrafts/update/%d", id)
	if err := c.send(http.MethodPut, path, nil, patch, &out, "Failed to update aircraft."); err != nil {
		return model.Aircraft{}, err
	}
	return out, nil
}

func (c *Client) DeleteAircraft(id int64) error {
	path := fmt.Sprintf("/aircrafts/delete/%d", id)
	return c.send(http.MethodDelete, path, nil, nil, nil, "Failed to delete aircraft.")
}
