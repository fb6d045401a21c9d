package payment

import (
	"context"
	"fmt"

	"auxin/models"
	"auxin/upstream"
	"auxin/utils"

	"go.uber.org/zap"
)

// DefaultPaymentService implements Service against the upstream payment
// backend, echoing the bridge IDs through the session store so the flow
// survives the full-page provider redirect.
type DefaultPaymentService struct {
	PaymentAPI *upstream.Client
	Store      *utils.SessionStore
	Logger     *zap.Logger
}

// NewDefaultPaymentService wires the service.
func NewDefaultPaymentService(api *upstream.Client, store *utils.SessionStore, logger *zap.Logger) *DefaultPaymentService {
	return &DefaultPaymentService{PaymentAPI: api, Store: store, Logger: logger}
}

// StartOrder opens a PayPal order upstream and records the pending
// appointment and order IDs. The caller redirects the client to the returned
// approval URL; the stored IDs are what lets the return leg resume.
func (s *DefaultPaymentService) StartOrder(ctx context.Context, userID, token string, req models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	res, err := s.PaymentAPI.CreateOrder(ctx, token, req)
	if err != nil {
		return nil, err
	}

	if err := s.Store.Set(ctx, userID, utils.KeyPendingAppointmentID, req.AppointmentID); err != nil {
		return nil, fmt.Errorf("failed to record pending appointment: %w", err)
	}
	if err := s.Store.Set(ctx, userID, utils.KeyPendingOrderID, res.OrderID); err != nil {
		return nil, fmt.Errorf("failed to record pending order: %w", err)
	}

	s.Logger.Info("payment order started",
		zap.String("userId", userID),
		zap.String("orderId", res.OrderID),
		zap.String("appointmentId", req.AppointmentID),
	)
	return res, nil
}

// CaptureOrder completes the order when the provider redirect returns. The
// bridge keys are consumed either way: a failed capture is terminal and any
// retry starts a fresh order.
func (s *DefaultPaymentService) CaptureOrder(ctx context.Context, userID, token string, req models.CaptureOrderRequest) (*models.CaptureOrderResponse, error) {
	if req.OrderID == "" || req.AppointmentID == "" {
		pending, err := s.Pending(ctx, userID)
		if err != nil {
			return nil, err
		}
		if req.OrderID == "" {
			req.OrderID = pending.OrderID
		}
		if req.AppointmentID == "" {
			req.AppointmentID = pending.AppointmentID
		}
	}

	res, captureErr := s.PaymentAPI.CaptureOrder(ctx, token, req)

	if err := s.Store.Delete(ctx, userID, utils.KeyPendingAppointmentID, utils.KeyPendingOrderID); err != nil {
		s.Logger.Warn("failed to clear payment bridge keys", zap.Error(err))
	}

	if captureErr != nil {
		s.Logger.Error("payment capture failed",
			zap.String("userId", userID),
			zap.String("orderId", req.OrderID),
			zap.Error(captureErr),
		)
		return nil, captureErr
	}

	if res.InvoiceID != "" {
		if err := s.Store.Set(ctx, userID, utils.KeyPendingInvoiceID, res.InvoiceID); err != nil {
			s.Logger.Warn("failed to record invoice id", zap.Error(err))
		}
	}

	s.Logger.Info("payment captured",
		zap.String("userId", userID),
		zap.String("orderId", res.OrderID),
		zap.String("status", res.Status),
	)
	return res, nil
}

// Pending returns the bridge state recorded by StartOrder, or
// ErrNoPendingOrder when the redirect came back without one.
func (s *DefaultPaymentService) Pending(ctx context.Context, userID string) (*PendingOrder, error) {
	orderID, err := s.Store.Get(ctx, userID, utils.KeyPendingOrderID)
	if err != nil {
		return nil, err
	}
	appointmentID, err := s.Store.Get(ctx, userID, utils.KeyPendingAppointmentID)
	if err != nil {
		return nil, err
	}
	if orderID == "" && appointmentID == "" {
		return nil, ErrNoPendingOrder
	}
	return &PendingOrder{AppointmentID: appointmentID, OrderID: orderID}, nil
}
