package errors

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("operation not allowed")
	ErrProjectNotFound     = errors.New("project not found")
	ErrUnsupportedFileType = errors.New("only PDF and DWG files are supported")
	ErrSubscriptionExpired = errors.New("subscription expired")
)
