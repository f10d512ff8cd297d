package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fjod/go_storefront/internal/domain"
)

type RegisterInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. The token endpoint
// takes a form body with the email passed as username.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthToken, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	var token domain.AuthToken
	if err := c.postForm(ctx, "/users/token", form, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
