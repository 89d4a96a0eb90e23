package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vvduth/food-boot-client/core/menu"
	"github.com/vvduth/food-boot-client/core/review"
)

func (c *Client) Categories(ctx context.Context) ([]menu.Category, error) {
	var cats []menu.Category
	err := c.call(ctx, http.MethodGet, "/categories/all", nil, nil, true, &cats)
	return cats, err
}

func (c *Client) Menus(ctx context.Context, f menu.Filter) ([]menu.Item, error) {
	query := url.Values{}
	if f.CategoryID != "" {
		query.Set("categoryId", f.CategoryID)
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	var items []menu.Item
	err := c.call(ctx, http.MethodGet, "/menus", query, nil, false, &items)
	return items, err
}

func (c *Client) MenuByID(ctx context.Context, id string) (menu.Item, error) {
	var it menu.Item
	err := c.call(ctx, http.MethodGet, "/menus/"+id, nil, nil, false, &it)
	return it, err
}

func (c *Client) MenuAverageRating(ctx context.Context, menuID string) (float64, error) {
	var avg float64
	err := c.call(ctx, http.MethodGet, "/reviews/menu-item/average/"+menuID, nil, nil, false, &avg)
	return avg, err
}

func (c *Client) CreateReview(ctx context.Context, rev review.New) (review.Review, error) {
	var r review.Review
	err := c.call(ctx, http.MethodPost, "/reviews", nil, rev, true, &r)
	return r, err
}
