package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

const cartBlob = "cart-storage"

// CartStore owns the single active cart for the session. Every mutation
// recomputes the total and commits the snapshot to storage before returning,
// so memory and the persisted copy never drift apart.
type CartStore struct {
	mu      sync.Mutex
	storage Storage
	cart    Cart
}

func NewCartStore(ctx context.Context, storage Storage) (*CartStore, error) {
	s := &CartStore{storage: storage, cart: Cart{Items: []CartItem{}}}

	data, err := storage.Load(ctx, cartBlob)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rehydrate cart: %w", err)
	}
	if err := json.Unmarshal(data, &s.cart); err != nil {
		return nil, fmt.Errorf("rehydrate cart: %w", err)
	}
	if s.cart.Items == nil {
		s.cart.Items = []CartItem{}
	}
	s.cart.Total = recompute(s.cart.Items)
	return s, nil
}

// AddItem merges into an existing line by product id, otherwise appends a new
// line with the price snapshotted from the product at call time. Quantities
// below 1 are treated as 1. Stock caps are the caller's concern.
func (s *CartStore) AddItem(ctx context.Context, product Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	merged := false
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == product.ID {
			s.cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart.Items = append(s.cart.Items, CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	s.cart.Total = recompute(s.cart.Items)
	return s.commit(ctx)
}

// RemoveItem is a no-op when the product is not in the cart.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cart.Items[:0]
	for _, it := range s.cart.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	s.cart.Items = items
	s.cart.Total = recompute(s.cart.Items)
	return s.commit(ctx)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. Unknown product ids are a no-op.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		items := s.cart.Items[:0]
		for _, it := range s.cart.Items {
			if it.ProductID != productID {
				items = append(items, it)
			}
		}
		s.cart.Items = items
	} else {
		for i := range s.cart.Items {
			if s.cart.Items[i].ProductID == productID {
				s.cart.Items[i].Quantity = quantity
				break
			}
		}
	}

	s.cart.Total = recompute(s.cart.Items)
	return s.commit(ctx)
}

func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = Cart{Items: []CartItem{}}
	return s.commit(ctx)
}

// Cart returns a snapshot; mutating it does not touch the store.
func (s *CartStore) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return Cart{Items: items, Total: s.cart.Total}
}

func (s *CartStore) commit(ctx context.Context) error {
	data, err := json.Marshal(s.cart)
	if err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	if err := s.storage.Save(ctx, cartBlob, data); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func recompute(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
