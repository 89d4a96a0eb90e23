package menu

import (
	"github.com/vvduth/food-boot-client/core/review"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	CategoryID  string          `json:"categoryId"`
	Reviews     []review.Review `json:"reviews,omitempty"`
}

// Filter narrows a menu listing. Zero values mean "no constraint".
type Filter struct {
	CategoryID string
	Search     string
}
