package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/common"
	"github.com/dmitrijs2005/passgod/internal/logging"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type HTTPClient struct {
	rc     *resty.Client
	tokens TokenSource
	log    logging.Logger

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, tokens TokenSource, log logging.Logger) *HTTPClient {
	c := &HTTPClient{tokens: tokens, log: log}

	c.rc = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.beforeRequest).
		OnAfterResponse(c.afterResponse).
		OnError(c.onError)

	return c
}

// OnUnauthorized installs the handler called on 401. It may be set after
// construction, which lets the session layer that owns the handler be built
// on top of this client.
func (c *HTTPClient) OnUnauthorized(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *HTTPClient) beforeRequest(_ *resty.Client, r *resty.Request) error {
	ctx := r.Context()
	r.SetHeader(common.RequestIDHeaderName, uuid.NewString())

	if isAnonymous(ctx) {
		return nil
	}

	token, err := c.tokens.Get(ctx)
	if err != nil {
		c.log.Warn(ctx, "unable to read access token, sending request without it", "error", err)
		return nil
	}
	if token != "" {
		r.SetAuthScheme(common.BearerScheme)
		r.SetAuthToken(token)
	}
	return nil
}

func (c *HTTPClient) afterResponse(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()

	c.log.Debug(ctx, "api response",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"request_id", resp.Request.Header.Get(common.RequestIDHeaderName),
		"duration", resp.Time(),
	)

	if resp.StatusCode() != http.StatusUnauthorized || isAnonymous(ctx) {
		return nil
	}

	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()

	if h != nil {
		c.log.Info(ctx, "access token rejected by server")
		h(ctx)
	}
	return nil
}

func (c *HTTPClient) onError(r *resty.Request, err error) {
	c.log.Debug(r.Context(), "api request failed",
		"method", r.Method,
		"url", r.URL,
		"request_id", r.Header.Get(common.RequestIDHeaderName),
		"error", err,
	)
}

func (c *HTTPClient) request(ctx context.Context) *resty.Request {
	return c.rc.R().SetContext(ctx)
}

func (c *HTTPClient) mapError(resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.IsError() {
		return newAPIError(resp.StatusCode(), resp.Body())
	}
	return nil
}

func (c *HTTPClient) Token(ctx context.Context, username, password string) (*models.AccessToken, error) {
	var out models.AccessToken
	resp, err := c.request(Anonymous(ctx)).
		SetFormData(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/auth/token")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	resp, err := c.request(ctx).SetResult(&out).Get("/auth/me")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, in models.Registration) (*models.User, error) {
	var out models.User
	resp, err := c.request(Anonymous(ctx)).SetBody(in).SetResult(&out).Post("/auth/register")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateShare(ctx context.Context, in models.ShareRequest) (*models.ShareResponse, error) {
	var out models.ShareResponse
	resp, err := c.request(ctx).SetBody(in).SetResult(&out).Post("/share/create")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RedeemShare(ctx context.Context, token string) (*models.SharePayload, error) {
	var out models.SharePayload
	resp, err := c.request(Anonymous(ctx)).
		SetPathParam("token", token).
		SetResult(&out).
		Get("/share/{token}")
	if err := c.mapError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
