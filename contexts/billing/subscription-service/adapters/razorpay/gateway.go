package razorpayadapter

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	domainerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	"drafthub/contexts/billing/subscription-service/ports"
)

// Gateway fronts Razorpay Orders. KeyID is exposed so the transport can hand
// it to the checkout widget.
type Gateway struct {
	client *razorpay.Client
	KeyID  string
	secret string
}

func NewGateway(keyID, secret string) *Gateway {
	return &Gateway{
		client: razorpay.NewClient(keyID, secret),
		KeyID:  keyID,
		secret: secret,
	}
}

func (g *Gateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (string, error) {
	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order create: missing order id in response")
	}
	return orderID, nil
}

func (g *Gateway) VerifySignature(orderID, paymentID, signature string) error {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if !utils.VerifyPaymentSignature(params, signature, g.secret) {
		return domainerrors.ErrPaymentVerificationFailed
	}
	return nil
}

var _ ports.PaymentGateway = (*Gateway)(nil)
