package cartclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakestore/internal/api"
	cartclient "fakestore/internal/api/cart"
	"fakestore/internal/models"
	"fakestore/pkg/lib/logger/slogdiscard"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *cartclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiClient := api.New(slogdiscard.NewDiscardLogger(), server.URL, 5*time.Second)
	return cartclient.New(slogdiscard.NewDiscardLogger(), apiClient)
}

func TestCreate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/carts", r.URL.Path)

		var body struct {
			UserId   int               `json:"userId"`
			Products []models.CartItem `json:"products"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 5, body.UserId)
		assert.NotNil(t, body.Products)
		assert.Empty(t, body.Products)

		json.NewEncoder(w).Encode(models.Cart{Id: 11, UserId: 5, Products: []models.CartItem{}})
	})

	cart, err := client.Create(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 11, cart.Id)
	assert.Empty(t, cart.Products)
}

func TestFetchById(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/carts/7", r.URL.Path)
			json.NewEncoder(w).Encode(models.Cart{
				Id:       7,
				UserId:   3,
				Date:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				Products: []models.CartItem{{ProductId: 1, Quantity: 2}},
			})
		})

		cart, err := client.FetchById(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 7, cart.Id)
		assert.Equal(t, []models.CartItem{{ProductId: 1, Quantity: 2}}, cart.Products)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		_, err := client.FetchById(context.Background(), 404)
		assert.True(t, errors.Is(err, api.ErrNotFound))
	})
}

func TestFetchByUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/carts/user/5", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Cart{
			{Id: 1, UserId: 5},
			{Id: 2, UserId: 5},
		})
	})

	carts, err := client.FetchByUser(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, carts, 2)
	// remote order preserved
	assert.Equal(t, 1, carts[0].Id)
	assert.Equal(t, 2, carts[1].Id)
}

func TestReplaceItems(t *testing.T) {
	items := []models.CartItem{{ProductId: 1, Quantity: 3}, {ProductId: 4, Quantity: 1}}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/carts/7", r.URL.Path)

		var body struct {
			Products []models.CartItem `json:"products"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, items, body.Products)

		json.NewEncoder(w).Encode(models.Cart{Id: 7, UserId: 3, Products: body.Products})
	})

	cart, err := client.ReplaceItems(context.Background(), 7, items)
	require.NoError(t, err)
	assert.Equal(t, items, cart.Products)
}
