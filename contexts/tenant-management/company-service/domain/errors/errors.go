package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrForbidden        = errors.New("access denied")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrEmailTaken       = errors.New("email already exists")
	ErrUserLimitReached = errors.New("user limit reached")
)
