package memory

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	domainerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	"drafthub/contexts/billing/subscription-service/ports"
)

// StubGateway is a deterministic in-process payment gateway for development
// and tests. It signs the same way the real provider does (HMAC-SHA256 over
// "orderID|paymentID") so verification paths are exercised for real.
type StubGateway struct {
	Secret   string
	sequence uint64
}

func NewStubGateway(secret string) *StubGateway {
	if secret == "" {
		secret = "stub-gateway-secret"
	}
	return &StubGateway{Secret: secret}
}

func (g *StubGateway) CreateOrder(_ context.Context, _ int64, _ string, _ string) (string, error) {
	return fmt.Sprintf("order_stub_%d", atomic.AddUint64(&g.sequence, 1)), nil
}

func (g *StubGateway) VerifySignature(orderID, paymentID, signature string) error {
	if signature != g.Sign(orderID, paymentID) {
		return domainerrors.ErrPaymentVerificationFailed
	}
	return nil
}

// Sign produces the signature the gateway would attach; tests use it to
// simulate a successful checkout callback.
func (g *StubGateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(g.Secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

var _ ports.PaymentGateway = (*StubGateway)(nil)
