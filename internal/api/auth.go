package api

import (
	"net/http"

	"github.com/agisilaos/skydesk/internal/model"
)

// Login exchanges credentials for a bearer token. The token body is opaque
// text; the caller decides whether to store it in the session.
func (c *Client) Login(creds model.Credentials) (string, error) {
	token, err := c.sendRaw(http.MethodPost, "/auth", creds, "Login failed.")
	if err != nil {
		return "", err
	}
	return token, nil
}

func (c *Client) UserInfo() (model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.get("/userInfo", nil, &profile, "Failed to fetch user info."); err != nil {
		return model.UserProfile{}, err
	}
	return profile, nil
}
