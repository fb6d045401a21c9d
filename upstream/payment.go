package upstream

import (
	"context"
	"net/http"

	"auxin/models"
)

// CreateOrder opens a PayPal order for a pending appointment and returns the
// provider-hosted approval URL.
func (c *Client) CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	var out models.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/paypal/create-order", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CaptureOrder completes a PayPal order after the approval redirect returns.
func (c *Client) CaptureOrder(ctx context.Context, token string, req models.CaptureOrderRequest) (*models.CaptureOrderResponse, error) {
	var out models.CaptureOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/paypal/capture-order", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
