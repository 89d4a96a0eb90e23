package cart

import (
	"github.com/vvduth/food-boot-client/core/menu"
)

// Cart is the server-owned aggregate. Totals and subtotals come from
// the backend; the client never computes them locally.
type Cart struct {
	ID          string  `json:"id"`
	Items       []Item  `json:"cartItems"`
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"totalAmount"`
}

type Item struct {
	ID           string    `json:"id"`
	Menu         menu.Item `json:"menu"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"pricePerUnit"`
	SubTotal     float64   `json:"subTotal"`
}

type NewItem struct {
	MenuID   string `json:"menuId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}
