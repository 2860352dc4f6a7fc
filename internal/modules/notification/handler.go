package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mentorhub/internal/pkg/identity"
	"mentorhub/internal/pkg/response"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.PATCH("/notifications/:id/read", h.MarkAsRead)
	rg.PATCH("/notifications/read-all", h.MarkAllAsRead)
	rg.GET("/notifications/ws", h.ServeWS)
}

func (h *Handler) List(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, unread, err := h.service.GetUserNotifications(c.Request.Context(), id.UserID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
	})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	notifID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), notifID, id.UserID); err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": notifID, "is_read": true})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.service.MarkAllAsRead(c.Request.Context(), id.UserID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notifications read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": true})
}

func (h *Handler) ServeWS(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.ServeWS(conn, id.UserID)
}
