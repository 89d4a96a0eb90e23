package payment

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSuccess   Status = "SUCCESS"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

type Provider string

const (
	ProviderStripe Provider = "STRIPE"
	ProviderPaypal Provider = "PAYPAL"
	ProviderCash   Provider = "CASH"
)

type Payment struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	Amount        float64   `json:"amount"`
	PaymentStatus Status    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId"`
	Gateway       Provider  `json:"paymentGateway"`
	FailureReason string    `json:"failureReason,omitempty"`
	Success       bool      `json:"success"`
	PaymentDate   time.Time `json:"paymentDate"`
}

// Update reports a gateway outcome back to the backend.
type Update struct {
	OrderID       string  `json:"orderId" validate:"required"`
	TransactionID string  `json:"transactionId" validate:"required"`
	Success       bool    `json:"success"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

// Due identifies an order awaiting payment. Checkout hands one of
// these to the payment handshake.
type Due struct {
	OrderID string
	Amount  float64
}
