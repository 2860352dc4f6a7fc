package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorhub/internal/pkg/identity"
	"mentorhub/internal/pkg/response"
)

const maxAvatarSize = 5 << 20 // 5 MiB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/avatar", h.UploadAvatar)
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "file field is required")
		return
	}
	if header.Size > maxAvatarSize {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Avatar must be under 5 MB")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Failed to read file")
		return
	}
	defer file.Close()

	url, err := h.service.UploadAvatar(c.Request.Context(), id.UserID, file)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			response.Error(c, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "File uploads are not configured")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to upload avatar")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"avatar_url": url})
}
