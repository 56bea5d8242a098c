package client

import (
	"context"

	"github.com/dmitrijs2005/passgod/internal/client/models"
)

func (c *HTTPClient) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	var out models.User
	resp, err := c.request(ctx).SetBody(in).SetResult(&out).Put("/users/me")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, in models.PasswordChange) error {
	resp, err := c.request(ctx).SetBody(in).Put("/users/me/password")
	return c.mapError(resp, err)
}

// DeleteAccount removes the current user on the server. The local token is
// left alone; clearing it is up to the caller.
func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	resp, err := c.request(ctx).Delete("/users/me")
	return c.mapError(resp, err)
}
