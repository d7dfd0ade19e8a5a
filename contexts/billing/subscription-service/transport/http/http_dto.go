package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateOrderRequest struct {
	PlanID string `json:"planId"`
}

// CreateOrderResponse carries what the checkout widget needs to open.
type CreateOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId,omitempty"`
}

// VerifyPaymentRequest mirrors the gateway callback field names so the
// frontend can forward the checkout result untouched.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type VerifyPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type PlanSnapshotPayload struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	MaxUsers       int     `json:"maxUsers"`
	StorageLimitGB int     `json:"storageLimitGB"`
}

type TransactionPayload struct {
	ID           string              `json:"id"`
	CompanyID    string              `json:"companyId"`
	PlanID       string              `json:"planId"`
	OrderID      string              `json:"orderId"`
	PaymentID    string              `json:"paymentId,omitempty"`
	Amount       int64               `json:"amount"`
	Currency     string              `json:"currency"`
	Status       string              `json:"status"`
	PlanSnapshot PlanSnapshotPayload `json:"planSnapshot"`
	CreatedAt    string              `json:"createdAt,omitempty"`
	PaidAt       string              `json:"paidAt,omitempty"`
}
