package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hairday/internal/models/response_models"
	"hairday/internal/services"
	"hairday/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationService
}

func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

func (n *NotificationController) ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := n.notificationService.List(c.Request.Context(), userID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	responses := make([]response_models.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		item := response_models.NotificationResponse{
			ID:        notification.ID.String(),
			Type:      string(notification.Type),
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		}
		if len(notification.Data) > 0 {
			var data any
			if err := json.Unmarshal(notification.Data, &data); err == nil {
				item.Data = data
			}
		}
		responses = append(responses, item)
	}

	utils.RespondSuccess(c, responses, "")
}

func (n *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid notification id")
		return
	}

	if err := n.notificationService.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		utils.RespondError(c, http.StatusNotFound, "Notification not found")
		return
	}

	utils.RespondSuccess(c, nil, "Notification marked as read")
}
