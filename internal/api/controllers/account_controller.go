package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hairday/internal/models/request_models"
	"hairday/internal/models/response_models"
	"hairday/internal/services"
	"hairday/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{accountService: accountService}
}

func (a *AccountController) SignUp(c *gin.Context) {
	var request request_models.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account created successfully")
}

func (a *AccountController) Login(c *gin.Context) {
	var request request_models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"token": token}, "Login successful")
}

func (a *AccountController) GetAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	account, err := a.accountService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	response := response_models.AccountResponse{
		ID:           account.ID.String(),
		Name:         account.Name,
		Email:        account.Email,
		Plan:         string(account.Plan),
		TokenBalance: account.TokenBalance,
		CardLast4:    account.CardLast4,
		CardBrand:    account.CardBrand,
	}
	if account.PlanStartedAt != nil {
		response.PlanStartedAt = utils.FormatRFC3339(utils.FromUnixSeconds(*account.PlanStartedAt))
	}
	if account.PlanExpiresAt != nil {
		response.PlanExpiresAt = utils.FormatRFC3339(utils.FromUnixSeconds(*account.PlanExpiresAt))
	}
	if account.PreviousPlan != nil {
		prior := string(*account.PreviousPlan)
		response.PreviousPlan = &prior
	}

	utils.RespondSuccess(c, response, "")
}

// currentUserID pulls the authenticated user id set by the JWT
// middleware; responds 401 itself when absent or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is invalid")
		return uuid.Nil, false
	}
	return userID, true
}
