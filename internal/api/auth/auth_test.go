package authclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakestore/internal/api"
	authclient "fakestore/internal/api/auth"
	"fakestore/internal/models"
	"fakestore/pkg/lib/logger/slogdiscard"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *authclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiClient := api.New(slogdiscard.NewDiscardLogger(), server.URL, 5*time.Second)
	return authclient.New(slogdiscard.NewDiscardLogger(), apiClient)
}

func TestLogin(t *testing.T) {
	users := []models.User{
		{Id: 1, Username: "johnd", Email: "john@gmail.com"},
		{Id: 2, Username: "mor_2314", Email: "morrison@gmail.com"},
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var creds models.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "mor_2314", creds.Username)
			json.NewEncoder(w).Encode(map[string]string{"token": "ey.tok"})
		case "/users":
			json.NewEncoder(w).Encode(users)
		default:
			http.NotFound(w, r)
		}
	}

	t.Run("resolves the user record after authenticating", func(t *testing.T) {
		client := newTestClient(t, handler)

		token, user, err := client.Login(context.Background(), models.Credentials{
			Username: "mor_2314",
			Password: "83r5^_",
		})
		require.NoError(t, err)
		assert.Equal(t, "ey.tok", token)
		assert.Equal(t, 2, user.Id)
	})

	t.Run("authenticated user missing from listing", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/login":
				json.NewEncoder(w).Encode(map[string]string{"token": "ey.tok"})
			case "/users":
				json.NewEncoder(w).Encode([]models.User{})
			default:
				http.NotFound(w, r)
			}
		})

		_, _, err := client.Login(context.Background(), models.Credentials{
			Username: "ghost",
			Password: "x",
		})
		assert.ErrorIs(t, err, authclient.ErrUserNotFound)
	})

	t.Run("rejected credentials propagate the api error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, _, err := client.Login(context.Background(), models.Credentials{
			Username: "johnd",
			Password: "wrong",
		})

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})
}

func TestSignup(t *testing.T) {
	t.Run("posts the full registration body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/users", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "newbie", body["username"])
			assert.Equal(t, "newbie@example.com", body["email"])
			assert.Equal(t, "s3cret", body["password"])

			// name and address are present but zeroed
			name, ok := body["name"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "", name["firstname"])
			assert.Equal(t, "", name["lastname"])

			address, ok := body["address"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "", address["city"])
			assert.Equal(t, float64(0), address["number"])

			json.NewEncoder(w).Encode(models.User{Id: 11, Username: "newbie"})
		})

		user, err := client.Signup(context.Background(), models.SignupCredentials{
			Username: "newbie",
			Password: "s3cret",
			Email:    "newbie@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, 11, user.Id)
	})

	t.Run("remote rejection propagates the api error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := client.Signup(context.Background(), models.SignupCredentials{
			Username: "newbie",
			Password: "s3cret",
			Email:    "newbie@example.com",
		})

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	})
}

func TestUserById(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/1", r.URL.Path)
		json.NewEncoder(w).Encode(models.User{Id: 1, Username: "johnd"})
	})

	user, err := client.UserById(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "johnd", user.Username)
}
