package payment

import (
	"context"
	"errors"

	"auxin/models"
)

// ErrNoPendingOrder is returned when a capture or resume is attempted but the
// redirect bridge holds no order for the user.
var ErrNoPendingOrder = errors.New("no pending payment order")

// PendingOrder is the bridge state carried across the provider redirect.
type PendingOrder struct {
	AppointmentID string `json:"appointmentId"`
	OrderID       string `json:"orderId"`
}

// Service drives the PayPal redirect bridge: start an order before handing the
// client to the provider, capture it when the return URL comes back.
type Service interface {
	StartOrder(ctx context.Context, userID, token string, req models.CreateOrderRequest) (*models.CreateOrderResponse, error)
	CaptureOrder(ctx context.Context, userID, token string, req models.CaptureOrderRequest) (*models.CaptureOrderResponse, error)
	Pending(ctx context.Context, userID string) (*PendingOrder, error)
}
