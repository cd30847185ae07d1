package apiclient

import (
	"context"
	"net/http"
)

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error) {
	var session SessionResponse
	if err := c.do(ctx, http.MethodPost, c.authBaseURL+"/register", req, false, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, creds Credentials) (*SessionResponse, error) {
	var session SessionResponse
	if err := c.do(ctx, http.MethodPost, c.authBaseURL+"/login", creds, false, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.authBaseURL+"/logout", nil, true, nil)
}

// Refresh exchanges a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*SessionResponse, error) {
	var session SessionResponse
	req := refreshRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, http.MethodPost, c.authBaseURL+"/refresh", req, false, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*UserPayload, error) {
	var user UserPayload
	if err := c.do(ctx, http.MethodGet, c.authBaseURL+"/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
