package cartstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"fakestore/internal/api"
	"fakestore/internal/models"
	storeerrors "fakestore/internal/store"
	"fakestore/pkg/lib/logger/sl"
)

// CartClient is the remote cart resource surface the store depends on.
type CartClient interface {
	Create(ctx context.Context, userId int) (models.Cart, error)
	FetchById(ctx context.Context, cartId int) (models.Cart, error)
	FetchByUser(ctx context.Context, userId int) ([]models.Cart, error)
	ReplaceItems(ctx context.Context, cartId int, items []models.CartItem) (models.Cart, error)
}

// State is the observable snapshot exposed to callers. Cart is a copy;
// mutating it does not affect the store.
type State struct {
	Cart      *models.Cart
	IsLoading bool
	Err       string
}

// Store owns the single active cart and mediates all mutations. Every
// operation holds opMu for its whole duration, so concurrent mutations
// queue up instead of racing on the read-modify-write of the item list.
type Store struct {
	log    *slog.Logger
	client CartClient

	opMu sync.Mutex

	stateMu sync.RWMutex
	cart    *models.Cart
	loading bool
	errMsg  string
}

func New(log *slog.Logger, client CartClient) *Store {
	return &Store{
		log:    log,
		client: client,
	}
}

// State returns a snapshot of {cart, isLoading, error}.
func (s *Store) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return State{
		Cart:      copyCart(s.cart),
		IsLoading: s.loading,
		Err:       s.errMsg,
	}
}

// InitializeForUser fetches the user's carts and adopts the most
// recently dated one, creating a fresh empty cart when none exist.
func (s *Store) InitializeForUser(ctx context.Context, userId int) error {
	const op = "store.cart.InitializeForUser"
	log := s.log.With("op", op, "userId", userId)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)

	carts, err := s.client.FetchByUser(ctx, userId)
	if err != nil {
		log.Error("Failed to fetch user carts", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w: %w", op, storeerrors.ErrInitFailed, err)
		s.fail(wrapped)
		return wrapped
	}

	if len(carts) > 0 {
		s.adopt(latestCart(carts))
		return nil
	}

	cart, err := s.client.Create(ctx, userId)
	if err != nil {
		log.Error("Failed to create cart", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w: %w", op, storeerrors.ErrInitFailed, err)
		s.fail(wrapped)
		return wrapped
	}

	s.adopt(cart)
	return nil
}

// FetchById replaces the active cart with the remote cart cartId.
func (s *Store) FetchById(ctx context.Context, cartId int) error {
	const op = "store.cart.FetchById"
	log := s.log.With("op", op, "cartId", cartId)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)

	cart, err := s.client.FetchById(ctx, cartId)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Warn("Cart not found", sl.Err(err))
			wrapped := fmt.Errorf("%s: %w", op, storeerrors.ErrCartNotFound)
			s.fail(wrapped)
			return wrapped
		}
		log.Error("Failed to fetch cart", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.fail(wrapped)
		return wrapped
	}

	s.adopt(cart)
	return nil
}

// FetchForUser adopts the user's most recently dated cart, or clears
// the active cart when the user has none.
func (s *Store) FetchForUser(ctx context.Context, userId int) error {
	const op = "store.cart.FetchForUser"
	log := s.log.With("op", op, "userId", userId)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)

	carts, err := s.client.FetchByUser(ctx, userId)
	if err != nil {
		log.Error("Failed to fetch user carts", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.fail(wrapped)
		return wrapped
	}

	if len(carts) == 0 {
		s.adoptNone()
		return nil
	}

	s.adopt(latestCart(carts))
	return nil
}

// AddItem increments the quantity of productId by quantity, appending a
// new line item when absent. Quantity must be positive.
func (s *Store) AddItem(ctx context.Context, productId, quantity int) error {
	const op = "store.cart.AddItem"
	log := s.log.With("op", op, "productId", productId, "quantity", quantity)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if quantity <= 0 {
		wrapped := fmt.Errorf("%s: %w", op, storeerrors.ErrInvalidQuantity)
		s.record(wrapped)
		return wrapped
	}

	cart := s.activeCart()
	if cart == nil {
		log.Warn("Mutation without an active cart")
		wrapped := fmt.Errorf("%s: %w", op, storeerrors.ErrNoActiveCart)
		s.record(wrapped)
		return wrapped
	}

	items := copyItems(cart.Products)
	found := false
	for i := range items {
		if items[i].ProductId == productId {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{ProductId: productId, Quantity: quantity})
	}

	return s.replace(ctx, op, log, cart.Id, items)
}

// SetQuantity sets the quantity of productId directly. Zero or negative
// removes the line item. Setting quantity on an absent item is a silent
// no-op: it never creates the item, unlike AddItem.
func (s *Store) SetQuantity(ctx context.Context, productId, quantity int) error {
	const op = "store.cart.SetQuantity"
	log := s.log.With("op", op, "productId", productId, "quantity", quantity)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	cart := s.activeCart()
	if cart == nil {
		log.Warn("Mutation without an active cart")
		wrapped := fmt.Errorf("%s: %w", op, storeerrors.ErrNoActiveCart)
		s.record(wrapped)
		return wrapped
	}

	idx := -1
	for i := range cart.Products {
		if cart.Products[i].ProductId == productId {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	items := copyItems(cart.Products)
	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}

	return s.replace(ctx, op, log, cart.Id, items)
}

// RemoveItem removes the line item for productId. Removing an absent
// item still persists the (unchanged) list, so the call is idempotent.
func (s *Store) RemoveItem(ctx context.Context, productId int) error {
	const op = "store.cart.RemoveItem"
	log := s.log.With("op", op, "productId", productId)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	cart := s.activeCart()
	if cart == nil {
		log.Warn("Mutation without an active cart")
		wrapped := fmt.Errorf("%s: %w", op, storeerrors.ErrNoActiveCart)
		s.record(wrapped)
		return wrapped
	}

	items := make([]models.CartItem, 0, len(cart.Products))
	for _, item := range cart.Products {
		if item.ProductId != productId {
			items = append(items, item)
		}
	}

	return s.replace(ctx, op, log, cart.Id, items)
}

// replace pushes the full item list to the remote and adopts the
// server's returned cart, so client and server never drift.
func (s *Store) replace(ctx context.Context, op string, log *slog.Logger, cartId int, items []models.CartItem) error {
	updated, err := s.client.ReplaceItems(ctx, cartId, items)
	if err != nil {
		log.Error("Failed to replace cart items", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.record(wrapped)
		return wrapped
	}

	s.adopt(updated)
	return nil
}

func (s *Store) activeCart() *models.Cart {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return copyCart(s.cart)
}

func (s *Store) setLoading(loading bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.loading = loading
	if loading {
		s.errMsg = ""
	}
}

func (s *Store) adopt(cart models.Cart) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.cart = copyCart(&cart)
	s.loading = false
	s.errMsg = ""
}

func (s *Store) adoptNone() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.cart = nil
	s.loading = false
	s.errMsg = ""
}

func (s *Store) fail(err error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.errMsg = err.Error()
	s.loading = false
}

func (s *Store) record(err error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.errMsg = err.Error()
}

func latestCart(carts []models.Cart) models.Cart {
	sorted := make([]models.Cart, len(carts))
	copy(sorted, carts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted[0]
}

func copyItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

func copyCart(cart *models.Cart) *models.Cart {
	if cart == nil {
		return nil
	}
	c := *cart
	c.Products = copyItems(cart.Products)
	return &c
}
