package errors

import "errors"

var (
	ErrInvalidRequest            = errors.New("invalid request")
	ErrUnauthenticated           = errors.New("authentication required")
	ErrForbidden                 = errors.New("operation not allowed")
	ErrPlanNotFound              = errors.New("plan not found")
	ErrCompanyNotFound           = errors.New("company not found")
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrSubscriptionExpired       = errors.New("subscription expired")
)
