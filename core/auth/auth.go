// Package auth talks to the login endpoint.
package auth

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

type (
	// Profile is the logged in user as returned by the backend.
	Profile struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Nickname string `json:"nickname"`
		Status   string `json:"status"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required,notblank"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string  `json:"token"`
		User  Profile `json:"user"`
	}
)

var ErrNoToken = errors.New("login response carries no token")

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username)
	return core.ValidateStruct(lr)
}

type Service struct {
	api core.Doer
}

func NewService(api core.Doer) *Service {
	return &Service{api: api}
}

// Login exchanges credentials for a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return LoginResponse{}, err
	}
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodPost, Path: "/auth/login", Body: req})
	if err != nil {
		return LoginResponse{}, errors.Wrap(err, "logging in")
	}
	var resp LoginResponse
	if err := env.Decode(&resp); err != nil {
		return LoginResponse{}, err
	}
	if resp.Token == "" {
		return LoginResponse{}, ErrNoToken
	}
	return resp, nil
}
