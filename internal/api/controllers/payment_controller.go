package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hairday/internal/models/request_models"
	"hairday/internal/models/response_models"
	"hairday/internal/services"
	"hairday/pkg/middleware"
	"hairday/pkg/utils"
)

type PaymentController struct {
	paymentService   services.PaymentService
	ledgerService    services.LedgerService
	sessionValidator middleware.SessionValidator
}

func NewPaymentController(paymentService services.PaymentService, ledgerService services.LedgerService,
	sessionValidator middleware.SessionValidator) *PaymentController {
	return &PaymentController{
		paymentService:   paymentService,
		ledgerService:    ledgerService,
		sessionValidator: sessionValidator,
	}
}

// VerifyPayment godoc
// @Summary Verify a gateway payment and credit the purchased plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.VerifyPaymentRequest true "Verify Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/verify [post]
func (p *PaymentController) VerifyPayment(c *gin.Context) {
	var request request_models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := p.paymentService.VerifyAndChargeWeb(c.Request.Context(), userID, request.PlanKey, request.PaymentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, chargeResponse(result), "Payment applied successfully")
}

// VerifyIAP godoc
// @Summary Verify a mobile in-app purchase receipt and credit the product
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.VerifyIAPRequest true "Verify IAP Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /iap/verify [post]
func (p *PaymentController) VerifyIAP(c *gin.Context) {
	var request request_models.VerifyIAPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if request.Receipt == "" {
		utils.RespondError(c, http.StatusBadRequest, "receipt is required")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := p.paymentService.VerifyAndChargeIAP(c.Request.Context(), userID, request.ProductID, request.Receipt)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, chargeResponse(result), "Purchase applied successfully")
}

// CancelPayment godoc
// @Summary Cancel a payment and restore the pre-charge account state
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CancelPaymentRequest true "Cancel Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/cancel [post]
func (p *PaymentController) CancelPayment(c *gin.Context) {
	var request request_models.CancelPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// An admin-initiated cancel proves itself with a valid session
	// token; a client-supplied flag is never trusted.
	isAdmin := false
	if token := c.GetHeader("X-Session-Token"); token != "" {
		if _, err := p.sessionValidator.ValidateSession(c.Request.Context(), token); err == nil {
			isAdmin = true
		}
	}

	result, err := p.ledgerService.Cancel(c.Request.Context(), request.PaymentID, request.Reason, userID, isAdmin)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.CancelResponse{
		Restored: response_models.RestoredState{
			Tokens: result.RestoredBalance,
			Plan:   string(result.RestoredPlan),
		},
	}, "Payment cancelled")
}

func chargeResponse(result *services.ChargeResult) response_models.ChargeResponse {
	response := response_models.ChargeResponse{
		Success:    true,
		Tokens:     result.TokensGranted,
		NewBalance: result.NewBalance,
		Plan:       string(result.Plan),
	}
	if result.PlanExpiresAt != nil {
		response.PlanExpiresAt = utils.FormatRFC3339(utils.FromUnixSeconds(*result.PlanExpiresAt))
	}
	return response
}
