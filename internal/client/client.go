package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/utils"
	"github.com/social-memo/social-memo/models"
)

// Client is a typed REST client for the server's authentication surface.
// It keeps the bearer token of the current session and attaches it to
// every authenticated call.
type Client struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// New constructs a Client pointed at the given server address.
// The address is normalised to a base URL; a bare host:port gets an
// http scheme prepended.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func New(address string, timeout time.Duration, logger *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	httpClient := utils.NewHTTPClient()
	httpClient.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{client: httpClient, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for use in the Authorization
// header of all subsequent authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the client, or an empty
// string if none has been set.
func (c *Client) Token() string {
	return c.token
}

// Login POSTs the credentials to POST /api/auth/login. On success the
// session token from the response body is stored via SetToken and returned.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Username: username, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var loginResponse models.LoginResponse
	if err = json.Unmarshal(resp.Body(), &loginResponse); err != nil {
		return "", fmt.Errorf("login decode response: %w", err)
	}

	c.SetToken(loginResponse.Token)
	return loginResponse.Token, nil
}

// Check GETs /api/auth/check with the held token (if any) and returns the
// server's answer. The endpoint is public, so an unauthenticated state is a
// normal response, not an error.
func (c *Client) Check(ctx context.Context) (models.AuthCheckResponse, error) {
	request := c.client.R().SetContext(ctx)
	if c.token != "" {
		request.SetHeader("Authorization", "Bearer "+c.token)
	}

	resp, err := request.Get("/api/auth/check")
	if err != nil {
		return models.AuthCheckResponse{}, fmt.Errorf("check request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthCheckResponse{}, err
	}

	var checkResponse models.AuthCheckResponse
	if err = json.Unmarshal(resp.Body(), &checkResponse); err != nil {
		return models.AuthCheckResponse{}, fmt.Errorf("check decode response: %w", err)
	}

	return checkResponse, nil
}

// Logout POSTs to /api/auth/logout, revoking the held session on the
// server, and drops the local token regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		Post("/api/auth/logout")

	c.SetToken("")

	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// ChangePassword POSTs the old and new password to
// POST /api/auth/change-password. On success the server revokes every
// session of the user, so the local token is dropped as well.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.token).
		SetBody(models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}).
		Post("/api/auth/change-password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	c.SetToken("")
	return nil
}
