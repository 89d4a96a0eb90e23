package order

import (
	"time"

	"github.com/vvduth/food-boot-client/core/menu"
	"github.com/vvduth/food-boot-client/core/payment"
	"github.com/vvduth/food-boot-client/core/user"
)

type Status string

const (
	Initialized Status = "INITIALIZED"
	Confirmed   Status = "CONFIRMED"
	OnTheWay    Status = "ON_THE_WAY"
	Delivered   Status = "DELIVERED"
	Cancelled   Status = "CANCELLED"
	Failed      Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

func (s Status) String() string {
	return string(s)
}

var transitions = map[Status][]Status{
	Initialized: {Confirmed, Cancelled, Failed},
	Confirmed:   {OnTheWay, Cancelled, Failed},
	OnTheWay:    {Delivered, Cancelled, Failed},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Item struct {
	ID           string    `json:"id"`
	MenuID       string    `json:"menuId"`
	Menu         menu.Item `json:"menu"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"pricePerUnit"`
	SubTotal     float64   `json:"subTotal"`
}

type Order struct {
	ID            string         `json:"id"`
	OrderDate     time.Time      `json:"orderDate"`
	TotalAmount   float64        `json:"totalAmount"`
	OrderStatus   Status         `json:"orderStatus"`
	PaymentStatus payment.Status `json:"paymentStatus"`
	User          user.Profile   `json:"user"`
	OrderItems    []Item         `json:"orderItems"`
}

type StatusUpdate struct {
	ID          string `json:"id" validate:"required"`
	OrderStatus Status `json:"orderStatus" validate:"required,oneof=INITIALIZED CONFIRMED ON_THE_WAY DELIVERED CANCELLED FAILED"`
}

// CheckoutResult is what the checkout endpoint returns: the order the
// cart snapshot became and the amount now due.
type CheckoutResult struct {
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}
