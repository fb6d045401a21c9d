package models

// CreateOrderRequest starts a PayPal order for a pending appointment.
type CreateOrderRequest struct {
	AppointmentID string  `json:"appointmentId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Currency      string  `json:"currency"`
}

// CreateOrderResponse carries the provider-hosted approval URL the client is
// redirected to, plus the order ID echoed through the return URL.
type CreateOrderResponse struct {
	OrderID     string `json:"orderId"`
	ApprovalURL string `json:"approvalUrl"`
}

// CaptureOrderRequest completes a PayPal order after the provider redirect
// returns. PayerID comes from the return-URL query string. OrderID and
// AppointmentID may be omitted; the stored bridge state fills them in.
type CaptureOrderRequest struct {
	OrderID       string `json:"orderId,omitempty"`
	AppointmentID string `json:"appointmentId,omitempty"`
	PayerID       string `json:"payerId,omitempty"`
}

// CaptureOrderResponse is the outcome of a capture attempt. A failed capture
// is terminal; retries are user-initiated only.
type CaptureOrderResponse struct {
	OrderID   string `json:"orderId"`
	Status    string `json:"status"` // e.g. "COMPLETED"
	InvoiceID string `json:"invoiceId,omitempty"`
}
