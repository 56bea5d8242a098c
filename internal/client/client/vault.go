package client

import (
	"context"

	"github.com/dmitrijs2005/passgod/internal/client/models"
)

func (c *HTTPClient) ListPasswords(ctx context.Context) ([]models.Password, error) {
	var out []models.Password
	resp, err := c.request(ctx).SetResult(&out).Get("/passwords/")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetPassword(ctx context.Context, id string) (*models.Password, error) {
	var out models.Password
	resp, err := c.request(ctx).SetPathParam("id", id).SetResult(&out).Get("/passwords/{id}")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreatePassword(ctx context.Context, in models.PasswordInput) (*models.Password, error) {
	var out models.Password
	resp, err := c.request(ctx).SetBody(in).SetResult(&out).Post("/passwords/")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, id string, in models.PasswordInput) (*models.Password, error) {
	var out models.Password
	resp, err := c.request(ctx).SetPathParam("id", id).SetBody(in).SetResult(&out).Put("/passwords/{id}")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePassword(ctx context.Context, id string) error {
	resp, err := c.request(ctx).SetPathParam("id", id).Delete("/passwords/{id}")
	return c.mapError(resp, err)
}

func (c *HTTPClient) ListSocialAccounts(ctx context.Context) ([]models.SocialAccount, error) {
	var out []models.SocialAccount
	resp, err := c.request(ctx).SetResult(&out).Get("/social/")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateSocialAccount(ctx context.Context, in models.SocialAccountInput) (*models.SocialAccount, error) {
	var out models.SocialAccount
	resp, err := c.request(ctx).SetBody(in).SetResult(&out).Post("/social/")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteSocialAccount(ctx context.Context, id string) error {
	resp, err := c.request(ctx).SetPathParam("id", id).Delete("/social/{id}")
	return c.mapError(resp, err)
}

func (c *HTTPClient) ListBreachAlerts(ctx context.Context) ([]models.BreachAlert, error) {
	var out []models.BreachAlert
	resp, err := c.request(ctx).SetResult(&out).Get("/breach/alerts")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ResolveBreachAlert(ctx context.Context, id string) (*models.BreachAlert, error) {
	var out models.BreachAlert
	resp, err := c.request(ctx).SetPathParam("id", id).SetResult(&out).Put("/breach/alerts/{id}/resolve")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
