package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hairday/internal/models/request_models"
	"hairday/internal/services"
	"hairday/pkg/utils"
)

type AdminController struct {
	adminService   services.AdminService
	sweeperService services.SweeperService
}

func NewAdminController(adminService services.AdminService, sweeperService services.SweeperService) *AdminController {
	return &AdminController{
		adminService:   adminService,
		sweeperService: sweeperService,
	}
}

func (a *AdminController) Login(c *gin.Context) {
	var request request_models.AdminLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, err := a.adminService.Login(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"session_token": token}, "Login successful")
}

// Register creates an admin. The very first admin may register
// without a session; after that the X-Session-Token header must carry
// a valid session from an existing admin.
func (a *AdminController) Register(c *gin.Context) {
	var request request_models.AdminRegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sessionToken := c.GetHeader("X-Session-Token")

	if err := a.adminService.Register(c.Request.Context(), sessionToken, request.Email, request.Password); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Admin registered")
}

func (a *AdminController) ChangePassword(c *gin.Context) {
	var request request_models.AdminChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sessionToken := c.GetHeader("X-Session-Token")

	if err := a.adminService.ChangePassword(c.Request.Context(), sessionToken, request.CurrentPassword, request.NewPassword); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password changed")
}

func (a *AdminController) Delete(c *gin.Context) {
	sessionToken := c.GetHeader("X-Session-Token")
	email := c.Param("email")

	if err := a.adminService.Delete(c.Request.Context(), sessionToken, email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Admin deleted")
}

func (a *AdminController) List(c *gin.Context) {
	sessionToken := c.GetHeader("X-Session-Token")

	admins, err := a.adminService.List(c.Request.Context(), sessionToken)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, admins, "")
}

// RunSweep triggers the expiration sweep outside its daily schedule
// and returns the aggregate stats. Safe to call repeatedly: the
// once-per-day notification rule holds across runs.
func (a *AdminController) RunSweep(c *gin.Context) {
	stats, err := a.sweeperService.Run(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Sweep finished")
}
