package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hairday/internal/models/request_models"
	"hairday/internal/services"
	"hairday/pkg/utils"
)

type StyleController struct {
	styleService services.StyleService
}

func NewStyleController(styleService services.StyleService) *StyleController {
	return &StyleController{styleService: styleService}
}

// StyleConsult godoc
// @Summary Run an AI hairstyle consult (metered)
// @Tags Features
// @Accept json
// @Produce json
// @Param request body request_models.StyleConsultRequest true "Style Consult Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ai/style-consult [post]
func (s *StyleController) StyleConsult(c *gin.Context) {
	var request request_models.StyleConsultRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	answer, newBalance, err := s.styleService.Consult(c.Request.Context(), userID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{
		"recommendation": answer,
		"new_balance":    newBalance,
	}, "")
}
