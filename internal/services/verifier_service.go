package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"hairday/pkg/utils"
)

const gatewayStatusPaid = "PAID"

// appleSandboxReceipt is Apple's "sandbox receipt sent to production"
// status; it is the only condition that triggers the sandbox retry.
const appleSandboxReceipt = 21007

type GatewayConfig struct {
	BaseURL      string // e.g. https://api.tosspayments.com
	SecretKey    string
	ProviderName string // stored on PaymentRecord metadata
	Timeout      time.Duration
}

type GatewayPayment struct {
	PaymentID string
	Amount    int64
	CardLast4 string
	CardBrand string
}

// PaymentGateway confirms a payment with the web payment authority
// and reverses it on cancellation. Implemented over the gateway's
// REST API; faked in tests.
type PaymentGateway interface {
	// Verify queries the payment by id and confirms it is PAID for
	// exactly expectedAmount. A mismatch is fatal, never tolerated.
	Verify(ctx context.Context, paymentID string, expectedAmount int64) (*GatewayPayment, error)
	// Cancel asks the gateway to reverse the charge. An error means
	// the charge was NOT reversed and nothing may be recorded locally.
	Cancel(ctx context.Context, paymentID string, reason string) error
}

type httpGateway struct {
	cfg    GatewayConfig
	client *http.Client
	logger *zap.Logger
}

func NewHTTPGateway(cfg GatewayConfig, logger *zap.Logger) PaymentGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type gatewayPaymentBody struct {
	PaymentID   string `json:"paymentId"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
	Card        *struct {
		Last4   string `json:"last4"`
		Company string `json:"company"`
	} `json:"card"`
}

type gatewayErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (g *httpGateway) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(g.cfg.SecretKey+":"))
}

func (g *httpGateway) Verify(ctx context.Context, paymentID string, expectedAmount int64) (*GatewayPayment, error) {
	endpoint := fmt.Sprintf("%s/v1/payments/%s", g.cfg.BaseURL, url.PathEscape(paymentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", g.authHeader())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, wrapGatewayTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeGatewayError(resp)
	}

	var body gatewayPaymentBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	if body.Status != gatewayStatusPaid {
		g.logger.Warn("payment not in paid status",
			zap.String("payment_id", paymentID),
			zap.String("status", body.Status))
		return nil, utils.ErrPaymentNotPaid
	}
	if body.TotalAmount != expectedAmount {
		g.logger.Warn("payment amount mismatch",
			zap.String("payment_id", paymentID),
			zap.Int64("expected", expectedAmount),
			zap.Int64("actual", body.TotalAmount))
		return nil, utils.ErrAmountMismatch
	}

	payment := &GatewayPayment{
		PaymentID: paymentID,
		Amount:    body.TotalAmount,
	}
	if body.Card != nil {
		payment.CardLast4 = body.Card.Last4
		payment.CardBrand = body.Card.Company
	}
	return payment, nil
}

func (g *httpGateway) Cancel(ctx context.Context, paymentID string, reason string) error {
	endpoint := fmt.Sprintf("%s/v1/payments/%s/cancel", g.cfg.BaseURL, url.PathEscape(paymentID))
	payload, _ := json.Marshal(map[string]string{"cancelReason": reason})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", g.authHeader())
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return wrapGatewayTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeGatewayError(resp)
	}
	return nil
}

func wrapGatewayTransportErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return utils.ErrVerificationUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return utils.ErrVerificationUnavailable
	}
	return fmt.Errorf("gateway request: %w", err)
}

func decodeGatewayError(resp *http.Response) error {
	var body gatewayErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		body.Message = resp.Status
	}
	return &utils.GatewayError{Code: body.Code, Message: body.Message}
}

// ---------------- Apple IAP ----------------

type IAPConfig struct {
	ProductionURL string // https://buy.itunes.apple.com/verifyReceipt
	SandboxURL    string // https://sandbox.itunes.apple.com/verifyReceipt
	SharedSecret  string
	Timeout       time.Duration
}

type IAPResult struct {
	TransactionID string
	ProductID     string
}

// IAPVerifier validates a mobile in-app purchase receipt against the
// platform's verification endpoint.
type IAPVerifier interface {
	VerifyReceipt(ctx context.Context, receipt string, productID string) (*IAPResult, error)
}

type appleIAPVerifier struct {
	cfg    IAPConfig
	client *http.Client
	logger *zap.Logger
}

func NewAppleIAPVerifier(cfg IAPConfig, logger *zap.Logger) IAPVerifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &appleIAPVerifier{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type appleReceiptResponse struct {
	Status  int `json:"status"`
	Receipt struct {
		InApp []struct {
			ProductID     string `json:"product_id"`
			TransactionID string `json:"transaction_id"`
		} `json:"in_app"`
	} `json:"receipt"`
}

func (v *appleIAPVerifier) VerifyReceipt(ctx context.Context, receipt string, productID string) (*IAPResult, error) {
	if receipt == "" {
		return nil, utils.ErrMissingReceipt
	}

	body, err := v.post(ctx, v.cfg.ProductionURL, receipt)
	if err != nil {
		return nil, err
	}

	// Narrow, documented retry: a sandbox receipt presented to the
	// production endpoint gets exactly one retry against sandbox.
	if body.Status == appleSandboxReceipt {
		v.logger.Info("sandbox receipt against production, retrying on sandbox endpoint")
		body, err = v.post(ctx, v.cfg.SandboxURL, receipt)
		if err != nil {
			return nil, err
		}
	}

	if body.Status != 0 {
		v.logger.Warn("apple receipt rejected", zap.Int("status", body.Status))
		return nil, utils.ErrReceiptInvalid
	}

	for _, item := range body.Receipt.InApp {
		if item.ProductID == productID {
			return &IAPResult{
				TransactionID: item.TransactionID,
				ProductID:     item.ProductID,
			}, nil
		}
	}
	return nil, utils.ErrReceiptInvalid
}

func (v *appleIAPVerifier) post(ctx context.Context, endpoint string, receipt string) (*appleReceiptResponse, error) {
	payload, _ := json.Marshal(map[string]string{
		"receipt-data": receipt,
		"password":     v.cfg.SharedSecret,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, wrapGatewayTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.ErrVerificationUnavailable
	}

	var body appleReceiptResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, utils.ErrReceiptInvalid
	}
	return &body, nil
}
