package controllers

import (
	"github.com/gin-gonic/gin"

	"hairday/internal/models/response_models"
	"hairday/internal/repositories"
	"hairday/pkg/utils"
)

type PlansController struct {
	store repositories.Store
}

func NewPlansController(store repositories.Store) *PlansController {
	return &PlansController{store: store}
}

func (p *PlansController) ListPlans(c *gin.Context) {
	plans, err := p.store.Plans().FindActive(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, utils.ErrDatabaseError)
		return
	}

	responses := make([]response_models.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, response_models.PlanResponse{
			Code:           plan.Code,
			Name:           plan.Name,
			PriceMinor:     plan.PriceMinor,
			Currency:       plan.Currency,
			ProductType:    string(plan.ProductType),
			TokenAllotment: plan.TokenAllotment,
			ValidityDays:   plan.ValidityDays,
		})
	}

	utils.RespondSuccess(c, responses, "")
}
