package utils

import (
	"errors"
	"fmt"
)

var (
	// Validation
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingReceipt = errors.New("receipt is required")

	// Business rules
	ErrAccountNotFound    = errors.New("account not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrAlreadyCancelled   = errors.New("payment already cancelled")
	ErrUnauthorized       = errors.New("not allowed to perform this action")
	ErrUnknownFeature     = errors.New("unknown feature")
	ErrAmountMismatch     = errors.New("payment amount does not match plan price")
	ErrPaymentNotPaid     = errors.New("payment is not in paid status")
	ErrReceiptInvalid     = errors.New("receipt verification failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionRequired    = errors.New("an admin session is required")

	// Infra
	ErrDatabaseError           = errors.New("database error")
	ErrVerificationUnavailable = errors.New("payment verification temporarily unavailable")
)

// InsufficientTokensError carries the shortfall so clients can show
// exactly how many tokens the user is missing.
type InsufficientTokensError struct {
	Required  int64
	Balance   int64
	Shortfall int64
}

func (e *InsufficientTokensError) Error() string {
	return fmt.Sprintf("insufficient tokens: need %d, have %d (short %d)", e.Required, e.Balance, e.Shortfall)
}

func NewInsufficientTokensError(required, balance int64) *InsufficientTokensError {
	return &InsufficientTokensError{
		Required:  required,
		Balance:   balance,
		Shortfall: required - balance,
	}
}

// GatewayError is a rejection from the payment authority, surfaced to
// the caller verbatim and never retried with different semantics.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("gateway rejected request: %s", e.Message)
	}
	return fmt.Sprintf("gateway rejected request [%s]: %s", e.Code, e.Message)
}
