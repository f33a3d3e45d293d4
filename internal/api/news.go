package api

import (
	"fmt"
	"net/http"

	"github.com/agisilaos/skydesk/internal/model"
)

func (c *Client) News() ([]model.News, error) {
	var out []model.News
	if err := c.get("/news/all", nil, &out, "Failed to fetch news."); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateNews(draft model.News) (model.News, error) {
	var out model.News
	if err := c.send(http.MethodPost, "/news/create", nil, draft, &out, "Failed to create news."); err != nil {
		return model.News{}, err
	}
	return out, nil
}

func (c *Client) UpdateNews(id int64, patch model.News) (model.News, error) {
	var out model.News
	path := fmt.Sprintf("/news/update/%d", id)
	if err := c.send(http.MethodPut, path, nil, patch, &out, "Failed to update news."); err != nil {
		return model.News{}, err
	}
	return out, nil
}

func (c *Client) DeleteNews(id int64) error {
	path := fmt.Sprintf("/news/delete/%d", id)
	return c.send(http.MethodDelete, path, nil, nil, nil, "Failed to delete news.")
}

// PublishNews moves a DRAFT item to PUBLISHED; the transition is one way.
func (c *Client) PublishNews(id int64) error {
	path := fmt.Sprintf("/news/accept/%d", id)
	return c.send(http.MethodPut, path, nil, nil, nil, "Failed to publish news.")
}
