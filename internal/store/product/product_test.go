package productstore_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fakestore/internal/api"
	"fakestore/internal/models"
	productstore "fakestore/internal/store/product"
	"fakestore/internal/store/product/mocks"
	"fakestore/pkg/lib/logger/slogdiscard"
)

func newTestStore(client *mocks.ProductClient) *productstore.Store {
	return productstore.New(slogdiscard.NewDiscardLogger(), client)
}

func fakeProduct(id int, price string) models.Product {
	return models.Product{
		Id:          id,
		Title:       gofakeit.ProductName(),
		Price:       decimal.RequireFromString(price),
		Description: gofakeit.Sentence(8),
		Category:    gofakeit.ProductCategory(),
		Image:       gofakeit.URL(),
	}
}

func TestFetchIndexesCatalog(t *testing.T) {
	client := new(mocks.ProductClient)
	store := newTestStore(client)

	products := []models.Product{fakeProduct(1, "9.99"), fakeProduct(2, "5.00")}
	client.On("List", mock.Anything).Return(products, nil).Once()

	got, err := store.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// catalog hit, no remote call
	p, err := store.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, products[1].Title, p.Title)
	client.AssertExpectations(t)
}

func TestGetFallsBackToRemote(t *testing.T) {
	client := new(mocks.ProductClient)
	store := newTestStore(client)

	product := fakeProduct(3, "19.90")
	client.On("GetById", mock.Anything, 3).Return(product, nil).Once()

	got, err := store.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, product.Title, got.Title)

	// second call is served from the catalog
	_, err = store.Get(context.Background(), 3)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestGetNotFound(t *testing.T) {
	client := new(mocks.ProductClient)
	store := newTestStore(client)

	notFound := &api.Error{Code: "http_404", Message: "Not Found", Status: http.StatusNotFound}
	client.On("GetById", mock.Anything, 99).Return(models.Product{}, notFound)

	_, err := store.Get(context.Background(), 99)
	assert.ErrorIs(t, err, productstore.ErrProductNotFound)
	assert.NotEmpty(t, store.Err())
}

func TestJoin(t *testing.T) {
	client := new(mocks.ProductClient)
	store := newTestStore(client)

	products := []models.Product{fakeProduct(1, "9.99"), fakeProduct(2, "5.00")}
	client.On("List", mock.Anything).Return(products, nil)
	_, err := store.Fetch(context.Background())
	require.NoError(t, err)

	cart := &models.Cart{
		Id:     1,
		UserId: 5,
		Products: []models.CartItem{
			{ProductId: 1, Quantity: 3},
			{ProductId: 2, Quantity: 1},
			{ProductId: 42, Quantity: 2}, // not in the catalog
		},
	}

	rows := store.Join(cart)
	require.Len(t, rows, 3)

	assert.Equal(t, products[0].Title, rows[0].Title)
	assert.True(t, rows[0].LineTotal.Equal(decimal.RequireFromString("29.97")), "got %s", rows[0].LineTotal)
	assert.True(t, rows[1].LineTotal.Equal(decimal.RequireFromString("5.00")))

	assert.True(t, rows[2].Unknown)
	assert.True(t, rows[2].LineTotal.IsZero())

	assert.True(t, store.Total(cart).Equal(decimal.RequireFromString("34.97")), "got %s", store.Total(cart))
}

func TestJoinNilCart(t *testing.T) {
	client := new(mocks.ProductClient)
	store := newTestStore(client)

	assert.Nil(t, store.Join(nil))
	assert.True(t, store.Total(nil).IsZero())
}

func TestFetchByCategory(t *testing.T) {
	client := new(mocks.ProductClient)
	store := newTestStore(client)

	products := []models.Product{fakeProduct(7, "1.50")}
	client.On("ListByCategory", mock.Anything, "electronics").Return(products, nil)

	got, err := store.FetchByCategory(context.Background(), "electronics")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// fetched products join the catalog index too
	p, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, products[0].Title, p.Title)
}

func TestCategories(t *testing.T) {
	t.Run("returns the remote listing", func(t *testing.T) {
		client := new(mocks.ProductClient)
		store := newTestStore(client)

		want := []string{"electronics", "jewelery"}
		client.On("Categories", mock.Anything).Return(want, nil)

		got, err := store.Categories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("failure is recorded", func(t *testing.T) {
		client := new(mocks.ProductClient)
		store := newTestStore(client)

		client.On("Categories", mock.Anything).Return(nil, assert.AnError)

		_, err := store.Categories(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotEmpty(t, store.Err())
	})
}

func TestFetchFailureRecordsError(t *testing.T) {
	client := new(mocks.ProductClient)
	store := newTestStore(client)

	client.On("List", mock.Anything).Return(nil, assert.AnError)

	_, err := store.Fetch(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotEmpty(t, store.Err())
}
