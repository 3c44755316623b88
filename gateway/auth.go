package gateway

import (
	"context"
	"net/http"

	"github.com/kiranamart/storefront-client/models"
)

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// POST /api/auth/customer-register
func (c *Client) CustomerRegister(ctx context.Context, name, mobile string) error {
	body := map[string]string{"name": name, "mobile": mobile}
	return c.do(ctx, http.MethodPost, "/api/auth/customer-register", nil, body, nil)
}

// POST /api/auth/customer-login. The returned session token is
// installed on the client for subsequent authorized calls.
func (c *Client) CustomerLogin(ctx context.Context, mobile string) (*models.User, error) {
	var out loginResponse
	body := map[string]string{"mobile": mobile}
	if err := c.do(ctx, http.MethodPost, "/api/auth/customer-login", nil, body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	user := out.User
	user.Role = models.RoleCustomer
	return &user, nil
}

// GET /api/auth/customer-me, the customer session probe.
func (c *Client) CustomerMe(ctx context.Context) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/customer-me", nil, nil, &out); err != nil {
		return nil, err
	}
	user := out.User
	user.Role = models.RoleCustomer
	return &user, nil
}

// POST /api/auth/customer-logout
func (c *Client) CustomerLogout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/customer-logout", nil, nil, nil)
}

// POST /api/auth/login (admin)
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*models.User, error) {
	var out loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	user := out.User
	user.Role = models.RoleAdmin
	if user.Email == "" {
		user.Email = email
	}
	return &user, nil
}

// POST /api/auth/logout (admin)
func (c *Client) AdminLogout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}
