package productstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"fakestore/internal/api"
	"fakestore/internal/models"
	"fakestore/pkg/lib/logger/sl"
)

var ErrProductNotFound = errors.New("product not found")

type ProductClient interface {
	List(ctx context.Context) ([]models.Product, error)
	GetById(ctx context.Context, productId int) (models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// Row is a cart line item joined against the catalog for display.
// Prices are joined client-side and never persisted in the cart.
type Row struct {
	ProductId int
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	Unknown   bool
}

type Store struct {
	log    *slog.Logger
	client ProductClient

	mu     sync.RWMutex
	byId   map[int]models.Product
	errMsg string
}

func New(log *slog.Logger, client ProductClient) *Store {
	return &Store{
		log:    log,
		client: client,
		byId:   make(map[int]models.Product),
	}
}

func (s *Store) Fetch(ctx context.Context) ([]models.Product, error) {
	const op = "store.product.Fetch"
	log := s.log.With("op", op)

	products, err := s.client.List(ctx)
	if err != nil {
		log.Error("Failed to fetch products", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.recordErr(wrapped)
		return nil, wrapped
	}

	s.index(products)
	return products, nil
}

func (s *Store) FetchByCategory(ctx context.Context, category string) ([]models.Product, error) {
	const op = "store.product.FetchByCategory"
	log := s.log.With("op", op, "category", category)

	products, err := s.client.ListByCategory(ctx, category)
	if err != nil {
		log.Error("Failed to fetch products by category", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.recordErr(wrapped)
		return nil, wrapped
	}

	s.index(products)
	return products, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	const op = "store.product.Categories"
	log := s.log.With("op", op)

	categories, err := s.client.Categories(ctx)
	if err != nil {
		log.Error("Failed to fetch categories", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.recordErr(wrapped)
		return nil, wrapped
	}

	return categories, nil
}

// Get returns the product from the local catalog, falling back to a
// remote fetch on a miss.
func (s *Store) Get(ctx context.Context, productId int) (models.Product, error) {
	const op = "store.product.Get"
	log := s.log.With("op", op, "productId", productId)

	s.mu.RLock()
	product, ok := s.byId[productId]
	s.mu.RUnlock()
	if ok {
		return product, nil
	}

	product, err := s.client.GetById(ctx, productId)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Warn("Product not found", sl.Err(err))
			wrapped := fmt.Errorf("%s: %w", op, ErrProductNotFound)
			s.recordErr(wrapped)
			return models.Product{}, wrapped
		}
		log.Error("Failed to fetch product", sl.Err(err))
		wrapped := fmt.Errorf("%s: %w", op, err)
		s.recordErr(wrapped)
		return models.Product{}, wrapped
	}

	s.mu.Lock()
	s.byId[product.Id] = product
	s.mu.Unlock()

	return product, nil
}

// Join resolves a cart's line items against the catalog. Items missing
// from the catalog come back as zero-price rows flagged Unknown.
func (s *Store) Join(cart *models.Cart) []Row {
	if cart == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]Row, 0, len(cart.Products))
	for _, item := range cart.Products {
		row := Row{
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
		}
		if product, ok := s.byId[item.ProductId]; ok {
			row.Title = product.Title
			row.UnitPrice = product.Price
			row.LineTotal = product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		} else {
			row.Unknown = true
		}
		rows = append(rows, row)
	}

	return rows
}

// Total sums the line totals of the joined rows.
func (s *Store) Total(cart *models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, row := range s.Join(cart) {
		total = total.Add(row.LineTotal)
	}
	return total
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = err.Error()
}

func (s *Store) index(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range products {
		s.byId[p.Id] = p
	}
	s.errMsg = ""
}
