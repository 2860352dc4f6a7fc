package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// RegisterPublicRoutes mounts slot browsing for mentees.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/mentors/:id/slots", h.FreeSlots)
}

// RegisterMentorRoutes mounts schedule management for mentors.
func (h *Handler) RegisterMentorRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability/rules", h.Rules)
	rg.POST("/availability/rules", h.CreateRule)
	rg.DELETE("/availability/rules/:id", h.DeleteRule)
	rg.POST("/availability/time-off", h.CreateTimeOff)
	rg.DELETE("/availability/time-off/:id", h.DeleteTimeOff)
}

func (h *Handler) FreeSlots(c *gin.Context) {
	mentorProfileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid mentor ID")
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
		return
	}

	slotMinutes, _ := strconv.Atoi(c.DefaultQuery("slot_minutes", "60"))

	slots, err := h.service.FreeSlots(c.Request.Context(), mentorProfileID, day, slotMinutes)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute slots")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) Rules(c *gin.Context) {
	id, ok := mentorIdentity(c)
	if !ok {
		return
	}

	rules, err := h.service.Rules(c.Request.Context(), id.MentorProfileID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load rules")
		return
	}

	response.Success(c, http.StatusOK, rules)
}

func (h *Handler) CreateRule(c *gin.Context) {
	id, ok := mentorIdentity(c)
	if !ok {
		return
	}

	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	rule, err := h.service.CreateRule(c.Request.Context(), id.MentorProfileID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rule)
}

func (h *Handler) DeleteRule(c *gin.Context) {
	id, ok := mentorIdentity(c)
	if !ok {
		return
	}

	ruleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rule ID")
		return
	}

	if err := h.service.DeleteRule(c.Request.Context(), id.MentorProfileID, ruleID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateTimeOff(c *gin.Context) {
	id, ok := mentorIdentity(c)
	if !ok {
		return
	}

	var req CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	off, err := h.service.CreateTimeOff(c.Request.Context(), id.MentorProfileID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, off)
}

func (h *Handler) DeleteTimeOff(c *gin.Context) {
	id, ok := mentorIdentity(c)
	if !ok {
		return
	}

	timeOffID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid time off ID")
		return
	}

	if err := h.service.DeleteTimeOff(c.Request.Context(), id.MentorProfileID, timeOffID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func mentorIdentity(c *gin.Context) (identity.Identity, bool) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return identity.Identity{}, false
	}
	if !id.IsMentor() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Mentor profile required")
		return identity.Identity{}, false
	}
	return id, true
}
