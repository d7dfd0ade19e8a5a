package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"drafthub/contexts/billing/subscription-service/application"
	"drafthub/contexts/billing/subscription-service/domain/entities"
	httptransport "drafthub/contexts/billing/subscription-service/transport/http"
	"drafthub/internal/shared/accesspolicy"
)

type Handler struct {
	Service application.Service
	// KeyID is the public gateway key the checkout widget opens with.
	KeyID  string
	Logger *slog.Logger
}

func (h Handler) CreateOrderHandler(
	ctx context.Context,
	principal accesspolicy.Principal,
	req httptransport.CreateOrderRequest,
) (httptransport.CreateOrderResponse, error) {
	transaction, err := h.Service.CreateOrder(ctx, principal, req.PlanID)
	if err != nil {
		return httptransport.CreateOrderResponse{}, err
	}
	return httptransport.CreateOrderResponse{
		OrderID:  transaction.OrderID,
		Amount:   transaction.Amount,
		Currency: transaction.Currency,
		KeyID:    h.KeyID,
	}, nil
}

func (h Handler) VerifyPaymentHandler(
	ctx context.Context,
	principal accesspolicy.Principal,
	req httptransport.VerifyPaymentRequest,
) (httptransport.VerifyPaymentResponse, error) {
	transaction, err := h.Service.VerifyPayment(ctx, principal, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		return httptransport.VerifyPaymentResponse{}, err
	}
	return httptransport.VerifyPaymentResponse{
		Status:  transaction.Status,
		Message: "Payment verified successfully",
	}, nil
}

func (h Handler) ListTransactionsHandler(ctx context.Context, principal accesspolicy.Principal) ([]httptransport.TransactionPayload, error) {
	transactions, err := h.Service.ListTransactions(ctx, principal)
	if err != nil {
		return nil, err
	}
	payloads := make([]httptransport.TransactionPayload, 0, len(transactions))
	for _, transaction := range transactions {
		payloads = append(payloads, transactionPayload(transaction))
	}
	return payloads, nil
}

func transactionPayload(transaction entities.Transaction) httptransport.TransactionPayload {
	payload := httptransport.TransactionPayload{
		ID:        transaction.ID,
		CompanyID: transaction.CompanyID,
		PlanID:    transaction.PlanID,
		OrderID:   transaction.OrderID,
		PaymentID: transaction.PaymentID,
		Amount:    transaction.Amount,
		Currency:  transaction.Currency,
		Status:    transaction.Status,
		PlanSnapshot: httptransport.PlanSnapshotPayload{
			Name:           transaction.PlanSnapshot.Name,
			Price:          transaction.PlanSnapshot.Price,
			MaxUsers:       transaction.PlanSnapshot.MaxUsers,
			StorageLimitGB: transaction.PlanSnapshot.StorageLimitGB,
		},
	}
	if !transaction.CreatedAt.IsZero() {
		payload.CreatedAt = transaction.CreatedAt.UTC().Format(time.RFC3339)
	}
	if transaction.PaidAt != nil {
		payload.PaidAt = transaction.PaidAt.UTC().Format(time.RFC3339)
	}
	return payload
}
