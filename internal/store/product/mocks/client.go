package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fakestore/internal/models"
)

type ProductClient struct {
	mock.Mock
}

func (m *ProductClient) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *ProductClient) GetById(ctx context.Context, productId int) (models.Product, error) {
	args := m.Called(ctx, productId)
	return args.Get(0).(models.Product), args.Error(1)
}
func (m *ProductClient) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	args := m.Called(ctx, category)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *ProductClient) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]string); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}
