package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vvduth/food-boot-client/core/order"
)

func (c *Client) MyOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	err := c.call(ctx, http.MethodGet, "/orders/me", nil, nil, true, &orders)
	return orders, err
}

func (c *Client) OrderByID(ctx context.Context, id string) (order.Order, error) {
	var ord order.Order
	err := c.call(ctx, http.MethodGet, "/orders/"+id, nil, nil, true, &ord)
	return ord, err
}

func (c *Client) Orders(ctx context.Context, status order.Status, page, size int) ([]order.Order, error) {
	query := url.Values{}
	if status != "" {
		query.Set("orderStatus", string(status))
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(size))
	}

	var orders []order.Order
	err := c.call(ctx, http.MethodGet, "/orders/all", query, nil, true, &orders)
	return orders, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, up order.StatusUpdate) error {
	return c.call(ctx, http.MethodPut, "/orders/update", nil, up, true, nil)
}

func (c *Client) CountUniqueCustomers(ctx context.Context) (int, error) {
	var count int
	err := c.call(ctx, http.MethodGet, "/orders/unique-customers", nil, nil, true, &count)
	return count, err
}

func (c *Client) OrderItemByID(ctx context.Context, id string) (order.Item, error) {
	var it order.Item
	err := c.call(ctx, http.MethodGet, "/orders/order-item/"+id, nil, nil, true, &it)
	return it, err
}
