package review

import "time"

type Review struct {
	ID        string    `json:"id"`
	MenuID    string    `json:"menuId"`
	OrderID   string    `json:"orderId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	MenuName  string    `json:"menuName"`
	CreatedAt time.Time `json:"createdAt"`
}

type New struct {
	MenuID  string `json:"menuId" validate:"required"`
	OrderID string `json:"orderId" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=10"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}
