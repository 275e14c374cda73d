package holidaze

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

func (c *Client) Register(ctx context.Context, in RegisterInput) (Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := Check(in); err != nil {
		return Profile{}, err
	}
	var res envelope[Profile]
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &res); err != nil {
		return Profile{}, err
	}
	return res.Data, nil
}

func (c *Client) Login(ctx context.Context, in LoginInput) (Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := Check(in); err != nil {
		return Session{}, err
	}
	var res envelope[Session]
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &res); err != nil {
		return Session{}, err
	}
	if res.Data.AccessToken == "" {
		return Session{}, errors.New("login failed: missing accessToken")
	}
	return res.Data, nil
}
