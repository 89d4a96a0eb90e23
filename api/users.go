package api

import (
	"context"
	"net/http"

	"github.com/vvduth/food-boot-client/core/user"
)

func (c *Client) Register(ctx context.Context, reg user.Registration) error {
	return c.call(ctx, http.MethodPost, "/auth/register", nil, reg, false, nil)
}

func (c *Client) Login(ctx context.Context, login user.Login) (user.Auth, error) {
	var auth user.Auth
	err := c.call(ctx, http.MethodPost, "/auth/login", nil, login, false, &auth)
	return auth, err
}

func (c *Client) MyProfile(ctx context.Context) (user.Profile, error) {
	var p user.Profile
	err := c.call(ctx, http.MethodGet, "/users/me", nil, nil, true, &p)
	return p, err
}

func (c *Client) UpdateProfile(ctx context.Context, up user.Update) (user.Profile, error) {
	var p user.Profile

	if up.Image == nil {
		err := c.call(ctx, http.MethodPut, "/users/update", nil, up, true, &p)
		return p, err
	}

	fields := make(map[string]string)
	set := func(k string, v *string) {
		if v != nil {
			fields[k] = *v
		}
	}
	set("name", up.Name)
	set("email", up.Email)
	set("phoneNumber", up.PhoneNumber)
	set("address", up.Address)

	err := c.callMultipart(ctx, http.MethodPut, "/users/update", fields, "imageFile", up.ImageName, up.Image, &p)
	return p, err
}

func (c *Client) DeactivateProfile(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/users/deactivate", nil, nil, true, nil)
}
