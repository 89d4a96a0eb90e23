package payment

import (
	"context"

	"github.com/plutov/paypal/v4"
	"github.com/vvduth/food-boot-client/api/apierr"
)

// PaypalGateway captures a PayPal order the buyer already approved on
// the PayPal side; the transaction token is the PayPal order id.
// "COMPLETED" is the only status treated as a successful charge.
type PaypalGateway struct {
	client *paypal.Client
}

func NewPaypalGateway(client *paypal.Client) *PaypalGateway {
	return &PaypalGateway{client: client}
}

func (g *PaypalGateway) Confirm(ctx context.Context, tx Transaction) (Confirmation, error) {
	resp, err := g.client.CaptureOrder(ctx, tx.Token, paypal.CaptureOrderRequest{})
	if err != nil {
		return Confirmation{}, apierr.Gateway("capture was rejected", err)
	}

	return Confirmation{
		TransactionID: resp.ID,
		Status:        resp.Status,
		Succeeded:     resp.Status == "COMPLETED",
	}, nil
}
