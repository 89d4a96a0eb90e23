package api

import (
	"context"
	"net/http"

	"github.com/vvduth/food-boot-client/core/payment"
)

type initPayment struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
}

// InitializePayment asks the backend to mint a gateway transaction
// reference for the order's amount. The returned token is opaque to
// the client and only meaningful to the gateway.
func (c *Client) InitializePayment(ctx context.Context, orderID string, amount float64) (string, error) {
	var token string
	err := c.call(ctx, http.MethodPost, "/payments/pay", nil, initPayment{OrderID: orderID, Amount: amount}, true, &token)
	return token, err
}

func (c *Client) UpdatePayment(ctx context.Context, up payment.Update) error {
	return c.call(ctx, http.MethodPut, "/payments/update", nil, up, true, nil)
}

func (c *Client) Payments(ctx context.Context) ([]payment.Payment, error) {
	var list []payment.Payment
	err := c.call(ctx, http.MethodGet, "/payments/all", nil, nil, true, &list)
	return list, err
}

func (c *Client) PaymentByID(ctx context.Context, id string) (payment.Payment, error) {
	var p payment.Payment
	err := c.call(ctx, http.MethodGet, "/payments/"+id, nil, nil, true, &p)
	return p, err
}
