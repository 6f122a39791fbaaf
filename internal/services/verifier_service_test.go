package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hairday/pkg/utils"
)

func gatewayServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func TestGatewayVerifyPaid(t *testing.T) {
	srv := gatewayServer(t, http.StatusOK, map[string]any{
		"paymentId":   "pay-1",
		"status":      "PAID",
		"totalAmount": 19900,
		"card":        map[string]string{"last4": "4242", "company": "visa"},
	})
	defer srv.Close()

	gateway := NewHTTPGateway(GatewayConfig{BaseURL: srv.URL, SecretKey: "sk_test"}, zap.NewNop())

	payment, err := gateway.Verify(context.Background(), "pay-1", 19900)
	require.NoError(t, err)
	assert.Equal(t, int64(19900), payment.Amount)
	assert.Equal(t, "4242", payment.CardLast4)
	assert.Equal(t, "visa", payment.CardBrand)
}

func TestGatewayVerifyAmountMismatch(t *testing.T) {
	srv := gatewayServer(t, http.StatusOK, map[string]any{
		"paymentId": "pay-2", "status": "PAID", "totalAmount": 100,
	})
	defer srv.Close()

	gateway := NewHTTPGateway(GatewayConfig{BaseURL: srv.URL, SecretKey: "sk_test"}, zap.NewNop())

	_, err := gateway.Verify(context.Background(), "pay-2", 19900)
	assert.ErrorIs(t, err, utils.ErrAmountMismatch)
}

func TestGatewayVerifyNotPaid(t *testing.T) {
	srv := gatewayServer(t, http.StatusOK, map[string]any{
		"paymentId": "pay-3", "status": "READY", "totalAmount": 19900,
	})
	defer srv.Close()

	gateway := NewHTTPGateway(GatewayConfig{BaseURL: srv.URL, SecretKey: "sk_test"}, zap.NewNop())

	_, err := gateway.Verify(context.Background(), "pay-3", 19900)
	assert.ErrorIs(t, err, utils.ErrPaymentNotPaid)
}

func TestGatewayVerifyDecodesErrorBody(t *testing.T) {
	srv := gatewayServer(t, http.StatusNotFound, map[string]string{
		"code": "NOT_FOUND_PAYMENT", "message": "존재하지 않는 결제입니다.",
	})
	defer srv.Close()

	gateway := NewHTTPGateway(GatewayConfig{BaseURL: srv.URL, SecretKey: "sk_test"}, zap.NewNop())

	_, err := gateway.Verify(context.Background(), "pay-missing", 19900)

	var gatewayErr *utils.GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, "NOT_FOUND_PAYMENT", gatewayErr.Code)
}

func TestGatewayCancel(t *testing.T) {
	var gotReason string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		gotReason = payload["cancelReason"]
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	gateway := NewHTTPGateway(GatewayConfig{BaseURL: srv.URL, SecretKey: "sk_test"}, zap.NewNop())

	err := gateway.Cancel(context.Background(), "pay-4", "user request")
	require.NoError(t, err)
	assert.Equal(t, "user request", gotReason)
}

func appleServer(t *testing.T, handler func(r *http.Request) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(handler(r))
	}))
}

func appleOKBody(productID, txnID string) map[string]any {
	return map[string]any{
		"status": 0,
		"receipt": map[string]any{
			"in_app": []map[string]string{
				{"product_id": productID, "transaction_id": txnID},
			},
		},
	}
}

func TestAppleVerifySendsSharedSecret(t *testing.T) {
	srv := appleServer(t, func(r *http.Request) any {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "shared-secret", payload["password"])
		assert.Equal(t, "base64-receipt", payload["receipt-data"])
		return appleOKBody("pro", "txn-1")
	})
	defer srv.Close()

	verifier := NewAppleIAPVerifier(IAPConfig{
		ProductionURL: srv.URL, SandboxURL: srv.URL, SharedSecret: "shared-secret",
	}, zap.NewNop())

	result, err := verifier.VerifyReceipt(context.Background(), "base64-receipt", "pro")
	require.NoError(t, err)
	assert.Equal(t, "txn-1", result.TransactionID)
	assert.Equal(t, "pro", result.ProductID)
}

func TestAppleVerifyRetriesSandboxOn21007(t *testing.T) {
	sandbox := appleServer(t, func(r *http.Request) any {
		return appleOKBody("pro", "txn-sandbox")
	})
	defer sandbox.Close()

	var productionCalls int
	production := appleServer(t, func(r *http.Request) any {
		productionCalls++
		return map[string]any{"status": 21007}
	})
	defer production.Close()

	verifier := NewAppleIAPVerifier(IAPConfig{
		ProductionURL: production.URL, SandboxURL: sandbox.URL,
	}, zap.NewNop())

	result, err := verifier.VerifyReceipt(context.Background(), "sandbox-receipt", "pro")
	require.NoError(t, err)
	assert.Equal(t, "txn-sandbox", result.TransactionID)
	assert.Equal(t, 1, productionCalls, "exactly one production attempt")
}

func TestAppleVerifyRejectsBadReceipt(t *testing.T) {
	srv := appleServer(t, func(r *http.Request) any {
		return map[string]any{"status": 21002}
	})
	defer srv.Close()

	verifier := NewAppleIAPVerifier(IAPConfig{ProductionURL: srv.URL, SandboxURL: srv.URL}, zap.NewNop())

	_, err := verifier.VerifyReceipt(context.Background(), "garbage", "pro")
	assert.ErrorIs(t, err, utils.ErrReceiptInvalid)
}

func TestAppleVerifyRejectsWrongProduct(t *testing.T) {
	srv := appleServer(t, func(r *http.Request) any {
		return appleOKBody("basic", "txn-2")
	})
	defer srv.Close()

	verifier := NewAppleIAPVerifier(IAPConfig{ProductionURL: srv.URL, SandboxURL: srv.URL}, zap.NewNop())

	_, err := verifier.VerifyReceipt(context.Background(), "receipt", "pro")
	assert.ErrorIs(t, err, utils.ErrReceiptInvalid)
}

func TestAppleVerifyRequiresReceipt(t *testing.T) {
	verifier := NewAppleIAPVerifier(IAPConfig{}, zap.NewNop())

	_, err := verifier.VerifyReceipt(context.Background(), "", "pro")
	assert.ErrorIs(t, err, utils.ErrMissingReceipt)
}
