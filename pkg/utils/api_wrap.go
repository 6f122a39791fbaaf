package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps the service error taxonomy onto HTTP codes:
// validation and business-rule errors are 400/403 with the message
// passed through, gateway rejections 400, infra failures a generic 500.
func HandleServiceError(c *gin.Context, err error) {
	var insufficient *InsufficientTokensError
	var gateway *GatewayError

	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrMissingReceipt):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: insufficient.Error(),
			TraceID: traceID(c),
			Data:    gin.H{"shortfall": insufficient.Shortfall},
		})
	case errors.As(err, &gateway):
		RespondError(c, http.StatusBadRequest, gateway.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSessionRequired):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired),
		errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrPaymentNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrUnknownFeature),
		errors.Is(err, ErrAmountMismatch), errors.Is(err, ErrPaymentNotPaid),
		errors.Is(err, ErrReceiptInvalid), errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrVerificationUnavailable):
		RespondError(c, http.StatusBadGateway, "Payment verification is unavailable, please try again")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
