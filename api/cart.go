package api

import (
	"context"
	"net/http"

	"github.com/vvduth/food-boot-client/core/cart"
	"github.com/vvduth/food-boot-client/core/order"
)

func (c *Client) Cart(ctx context.Context) (cart.Cart, error) {
	var crt cart.Cart
	err := c.call(ctx, http.MethodGet, "/cart", nil, nil, true, &crt)
	return crt, err
}

// Mutations discard the response body: the workflow re-fetches the
// cart instead of trusting partial mutation responses.

func (c *Client) AddCartItem(ctx context.Context, it cart.NewItem) error {
	return c.call(ctx, http.MethodPost, "/cart/items", nil, it, true, nil)
}

func (c *Client) IncrementItem(ctx context.Context, menuID string) error {
	return c.call(ctx, http.MethodPut, "/cart/items/increment/"+menuID, nil, nil, true, nil)
}

func (c *Client) DecrementItem(ctx context.Context, menuID string) error {
	return c.call(ctx, http.MethodPut, "/cart/items/decrement/"+menuID, nil, nil, true, nil)
}

func (c *Client) RemoveItem(ctx context.Context, cartItemID string) error {
	return c.call(ctx, http.MethodDelete, "/cart/items/"+cartItemID, nil, nil, true, nil)
}

func (c *Client) Checkout(ctx context.Context) (order.CheckoutResult, error) {
	var res order.CheckoutResult
	err := c.call(ctx, http.MethodPost, "/orders/checkout", nil, nil, true, &res)
	return res, err
}
