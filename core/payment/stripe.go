package payment

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"github.com/vvduth/food-boot-client/api/apierr"
	"github.com/vvduth/food-boot-client/validate"
)

// StripeGateway confirms the payment intent the backend minted for the
// order. The backend hands out the intent's client secret as the
// transaction token; "succeeded" is the only status treated as a
// successful charge.
type StripeGateway struct {
	api *stripecl.API
}

func NewStripeGateway(api *stripecl.API) *StripeGateway {
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Confirm(ctx context.Context, tx Transaction) (Confirmation, error) {
	if tx.Card == nil {
		return Confirmation{}, apierr.Gateway("card details are required", nil)
	}

	pm, err := g.api.PaymentMethods.New(&stripe.PaymentMethodParams{
		Params: stripe.Params{Context: ctx},
		Type:   stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(tx.Card.Number),
			ExpMonth: stripe.Int64(tx.Card.ExpMonth),
			ExpYear:  stripe.Int64(tx.Card.ExpYear),
			CVC:      stripe.String(tx.Card.CVC),
		},
	})
	if err != nil {
		return Confirmation{}, apierr.Gateway("card could not be registered", err)
	}

	// One key per attempt: a retried confirm after a timeout must not
	// double-charge.
	pi, err := g.api.PaymentIntents.Confirm(intentID(tx.Token), &stripe.PaymentIntentConfirmParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String(validate.GenerateID()),
		},
		PaymentMethod: stripe.String(pm.ID),
	})
	if err != nil {
		return Confirmation{}, apierr.Gateway("card was declined", err)
	}

	return Confirmation{
		TransactionID: pi.ID,
		Status:        string(pi.Status),
		Succeeded:     pi.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}

// intentID recovers the payment intent id from its client secret.
func intentID(token string) string {
	if i := strings.Index(token, "_secret"); i > 0 {
		return token[:i]
	}
	return token
}
