package api

import (
	"context"
	"net/http"
	"strings"
)

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return AuthResponse{}, ValidationError{Field: "email"}
	}
	if req.Password == "" {
		return AuthResponse{}, ValidationError{Field: "password"}
	}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return resp, nil
}

// Login authenticates an existing account and stores the returned token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return AuthResponse{}, ValidationError{Field: "email"}
	}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return resp, nil
}
