package cartclient

import (
	"context"
	"fmt"
	"log/slog"

	"fakestore/internal/api"
	"fakestore/internal/models"
	"fakestore/pkg/lib/logger/sl"
)

const basePath = "/carts"

// Client performs remote cart I/O. It is the only component allowed to
// touch the cart resource.
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

type createRequest struct {
	UserId   int               `json:"userId"`
	Products []models.CartItem `json:"products"`
}

type replaceRequest struct {
	Products []models.CartItem `json:"products"`
}

// Create makes a new empty cart for userId.
func (c *Client) Create(ctx context.Context, userId int) (models.Cart, error) {
	const op = "api.cart.Create"
	log := c.log.With("op", op)

	body := createRequest{
		UserId:   userId,
		Products: []models.CartItem{},
	}

	var cart models.Cart
	if err := c.api.Post(ctx, basePath, body, &cart); err != nil {
		log.Error("Failed to create cart", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return cart, nil
}

func (c *Client) FetchById(ctx context.Context, cartId int) (models.Cart, error) {
	const op = "api.cart.FetchById"
	log := c.log.With("op", op)

	var cart models.Cart
	if err := c.api.Get(ctx, fmt.Sprintf("%s/%d", basePath, cartId), &cart); err != nil {
		log.Error("Failed to fetch cart", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return cart, nil
}

// FetchByUser returns the user's carts in remote order, which is not
// guaranteed chronological.
func (c *Client) FetchByUser(ctx context.Context, userId int) ([]models.Cart, error) {
	const op = "api.cart.FetchByUser"
	log := c.log.With("op", op)

	var carts []models.Cart
	if err := c.api.Get(ctx, fmt.Sprintf("%s/user/%d", basePath, userId), &carts); err != nil {
		log.Error("Failed to fetch user carts", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return carts, nil
}

// ReplaceItems sends the full item list; the list sent is authoritative
// and overwrites whatever the server holds.
func (c *Client) ReplaceItems(ctx context.Context, cartId int, items []models.CartItem) (models.Cart, error) {
	const op = "api.cart.ReplaceItems"
	log := c.log.With("op", op)

	body := replaceRequest{Products: items}

	var cart models.Cart
	if err := c.api.Put(ctx, fmt.Sprintf("%s/%d", basePath, cartId), body, &cart); err != nil {
		log.Error("Failed to replace cart items", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return cart, nil
}
