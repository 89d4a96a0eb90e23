package payment

import "context"

type Card struct {
	Number   string `validate:"required,credit_card"`
	ExpMonth int64  `validate:"required,gte=1,lte=12"`
	ExpYear  int64  `validate:"required"`
	CVC      string `validate:"required,min=3,max=4"`
}

// Transaction is what the gateway needs to confirm a charge: the
// backend-minted token, the amount, and card details for gateways that
// collect them client-side.
type Transaction struct {
	Token  string
	Amount float64
	Card   *Card
}

type Confirmation struct {
	TransactionID string
	Status        string
	Succeeded     bool
}

// Gateway confirms a transaction with an external payment processor.
// A returned error means the gateway could not decide; a Confirmation
// with Succeeded=false means it decided against the charge.
type Gateway interface {
	Confirm(ctx context.Context, tx Transaction) (Confirmation, error)
}
