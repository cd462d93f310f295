package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fakestore/internal/models"
)

type CartClient struct {
	mock.Mock
}

func (m *CartClient) Create(ctx context.Context, userId int) (models.Cart, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *CartClient) FetchById(ctx context.Context, cartId int) (models.Cart, error) {
	args := m.Called(ctx, cartId)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *CartClient) FetchByUser(ctx context.Context, userId int) ([]models.Cart, error) {
	args := m.Called(ctx, userId)
	if carts, ok := args.Get(0).([]models.Cart); ok {
		return carts, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *CartClient) ReplaceItems(ctx context.Context, cartId int, items []models.CartItem) (models.Cart, error) {
	args := m.Called(ctx, cartId, items)
	return args.Get(0).(models.Cart), args.Error(1)
}
