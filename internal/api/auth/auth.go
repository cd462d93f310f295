package authclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fakestore/internal/api"
	"fakestore/internal/models"
	"fakestore/pkg/lib/logger/sl"
)

const (
	loginPath = "/auth/login"
	usersPath = "/users"
)

var ErrUserNotFound = errors.New("user not found")

type Client struct {
	log *slog.Logger
	api *api.Client
}

func New(log *slog.Logger, apiClient *api.Client) *Client {
	return &Client{
		log: log,
		api: apiClient,
	}
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates and resolves the full user record. The demo API
// login endpoint returns only a token, so the user is looked up by
// username from the users listing afterwards.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, models.User, error) {
	const op = "api.auth.Login"
	log := c.log.With("op", op)

	var resp loginResponse
	if err := c.api.Post(ctx, loginPath, creds, &resp); err != nil {
		log.Error("Failed to login", sl.Err(err))
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	users, err := c.Users(ctx)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, u := range users {
		if u.Username == creds.Username {
			return resp.Token, u, nil
		}
	}

	log.Warn("Authenticated user missing from listing", "username", creds.Username)
	return "", models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
}

type signupRequest struct {
	Email    string         `json:"email"`
	Username string         `json:"username"`
	Password string         `json:"password"`
	Name     models.Name    `json:"name"`
	Address  models.Address `json:"address"`
	Phone    string         `json:"phone"`
}

// Signup registers a new account. The demo API only needs the three
// credential fields; name and address are sent zeroed and filled in by
// the user later.
func (c *Client) Signup(ctx context.Context, creds models.SignupCredentials) (models.User, error) {
	const op = "api.auth.Signup"
	log := c.log.With("op", op)

	body := signupRequest{
		Email:    creds.Email,
		Username: creds.Username,
		Password: creds.Password,
	}

	var user models.User
	if err := c.api.Post(ctx, usersPath, body, &user); err != nil {
		log.Error("Failed to sign up", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	const op = "api.auth.Users"
	log := c.log.With("op", op)

	var users []models.User
	if err := c.api.Get(ctx, usersPath, &users); err != nil {
		log.Error("Failed to list users", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func (c *Client) UserById(ctx context.Context, userId int) (models.User, error) {
	const op = "api.auth.UserById"
	log := c.log.With("op", op)

	var user models.User
	if err := c.api.Get(ctx, fmt.Sprintf("%s/%d", usersPath, userId), &user); err != nil {
		log.Error("Failed to fetch user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
