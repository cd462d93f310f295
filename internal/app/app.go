package app

import (
	"log/slog"

	"fakestore/internal/api"
	authclient "fakestore/internal/api/auth"
	cartclient "fakestore/internal/api/cart"
	productclient "fakestore/internal/api/product"
	authstore "fakestore/internal/store/auth"
	cartstore "fakestore/internal/store/cart"
	productstore "fakestore/internal/store/product"
	"fakestore/pkg/config"
)

// App wires the resource clients and stores together. Everything is an
// explicitly constructed value; there are no package-level singletons.
type App struct {
	Log *slog.Logger
	API *api.Client

	Carts    *cartstore.Store
	Products *productstore.Store
	Auth     *authstore.Store
}

func New(log *slog.Logger, cfg *config.Config) *App {
	apiClient := api.New(log, cfg.API.BaseURL, cfg.API.Timeout)

	return &App{
		Log:      log,
		API:      apiClient,
		Carts:    cartstore.New(log, cartclient.New(log, apiClient)),
		Products: productstore.New(log, productclient.New(log, apiClient)),
		Auth:     authstore.New(log, authclient.New(log, apiClient), apiClient),
	}
}
