package profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mentorhub/internal/pkg/identity"
	"mentorhub/internal/pkg/response"
	"mentorhub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the mentor catalog browsing endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/mentors", h.ListPublic)
	rg.GET("/mentors/:id", h.GetPublic)
}

// RegisterProtectedRoutes mounts the endpoints a mentor uses on their own profile.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/mentors/me/profile", h.GetOwn)
	rg.PATCH("/mentors/me/profile", h.Update)
	rg.POST("/mentors/me/skills", h.AttachSkill)
	rg.DELETE("/mentors/me/skills/:skillId", h.DetachSkill)
}

func (h *Handler) ListPublic(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	profiles, total, err := h.service.ListPublic(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load mentors")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"mentors": toProfileResponses(profiles),
		"total":   total,
	})
}

func (h *Handler) GetPublic(c *gin.Context) {
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid mentor ID")
		return
	}

	p, err := h.service.GetPublic(c.Request.Context(), profileID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toProfileResponse(p))
}

func (h *Handler) GetOwn(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	p, err := h.service.GetOwn(c.Request.Context(), id.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toProfileResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id.UserID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toProfileResponse(p))
}

func (h *Handler) AttachSkill(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if !id.IsMentor() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Mentor profile required")
		return
	}

	var req AttachSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	if err := h.service.AttachSkill(c.Request.Context(), id.MentorProfileID, req.SkillID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attached": true})
}

func (h *Handler) DetachSkill(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if !id.IsMentor() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Mentor profile required")
		return
	}

	skillID, err := strconv.ParseInt(c.Param("skillId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid skill ID")
		return
	}

	if err := h.service.DetachSkill(c.Request.Context(), id.MentorProfileID, skillID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"detached": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Mentor profile not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
