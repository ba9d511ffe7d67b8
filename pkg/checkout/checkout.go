package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/storefront/pkg/shopclient"
	"github.com/Skotchmaster/storefront/pkg/store"
)

var ErrEmptyCart = errors.New("cart is empty")

type Customer struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// OrderCreator is the order-creation call of the shop API client.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order shopclient.OrderCreate) (*shopclient.Order, error)
}

// BuildOrder derives an order payload from a cart snapshot. Items and total
// are copied verbatim; nothing is re-priced here.
func BuildOrder(cart store.Cart, customer Customer) (shopclient.OrderCreate, error) {
	if len(cart.Items) == 0 {
		return shopclient.OrderCreate{}, ErrEmptyCart
	}

	items := make([]store.CartItem, len(cart.Items))
	copy(items, cart.Items)

	return shopclient.OrderCreate{
		Items:           items,
		Total:           cart.Total,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		Notes:           customer.Notes,
	}, nil
}

// Submit posts the current cart as an order. On success the cart is cleared;
// on failure it is left untouched so the user can retry. At most one attempt
// per call, no idempotency key.
func Submit(ctx context.Context, creator OrderCreator, carts *store.CartStore, customer Customer) (*shopclient.Order, error) {
	order, err := BuildOrder(carts.Cart(), customer)
	if err != nil {
		return nil, err
	}

	created, err := creator.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	if err := carts.Clear(ctx); err != nil {
		return created, fmt.Errorf("clear cart after order: %w", err)
	}
	return created, nil
}
