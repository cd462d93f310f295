package productclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"fakestore/internal/api"
	"fakestore/internal/models"
	"fakestore/pkg/lib/logger/sl"
)

const basePath = "/products"

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

func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	const op = "api.product.List"
	log := c.log.With("op", op)

	var products []models.Product
	if err := c.api.Get(ctx, basePath, &products); err != nil {
		log.Error("Failed to list products", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (c *Client) GetById(ctx context.Context, productId int) (models.Product, error) {
	const op = "api.product.GetById"
	log := c.log.With("op", op)

	var product models.Product
	if err := c.api.Get(ctx, fmt.Sprintf("%s/%d", basePath, productId), &product); err != nil {
		log.Error("Failed to fetch product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

func (c *Client) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	const op = "api.product.ListByCategory"
	log := c.log.With("op", op)

	var products []models.Product
	path := fmt.Sprintf("%s/category/%s", basePath, url.PathEscape(category))
	if err := c.api.Get(ctx, path, &products); err != nil {
		log.Error("Failed to list products by category", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	const op = "api.product.Categories"
	log := c.log.With("op", op)

	var categories []string
	if err := c.api.Get(ctx, basePath+"/categories", &categories); err != nil {
		log.Error("Failed to list categories", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}
