package catalog

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

// RegisterPublicRoutes mounts skill and listing browsing.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/skills", h.ListSkills)
	rg.GET("/listings", h.BrowseListings)
	rg.GET("/listings/:id", h.GetListing)
}

// RegisterMentorRoutes mounts listing management for mentors.
func (h *Handler) RegisterMentorRoutes(rg *gin.RouterGroup) {
	rg.POST("/listings", h.CreateListing)
	rg.PATCH("/listings/:id", h.UpdateListing)
	rg.GET("/listings/mentor/my-listings", h.MyListings)
}

// RegisterAdminRoutes mounts skill management.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/skills", h.CreateSkill)
}

func (h *Handler) ListSkills(c *gin.Context) {
	skills, err := h.service.ListSkills(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load skills")
		return
	}
	response.Success(c, http.StatusOK, skills)
}

func (h *Handler) CreateSkill(c *gin.Context) {
	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	skill, err := h.service.CreateSkill(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, skill)
}

func (h *Handler) BrowseListings(c *gin.Context) {
	skillID, _ := strconv.ParseInt(c.DefaultQuery("skill_id", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	listings, total, err := h.service.BrowseListings(c.Request.Context(), skillID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load listings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"listings": toListingResponses(listings),
		"total":    total,
	})
}

func (h *Handler) GetListing(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	l, err := h.service.GetListing(c.Request.Context(), listingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toListingResponse(l))
}

func (h *Handler) CreateListing(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if !id.IsMentor() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Mentor profile required")
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	l, err := h.service.CreateListing(c.Request.Context(), id.MentorProfileID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toListingResponse(l))
}

func (h *Handler) UpdateListing(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if !id.IsMentor() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Mentor profile required")
		return
	}

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	l, err := h.service.UpdateListing(c.Request.Context(), id.MentorProfileID, listingID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toListingResponse(l))
}

func (h *Handler) MyListings(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if !id.IsMentor() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Mentor profile required")
		return
	}

	listings, err := h.service.ListingsForMentor(c.Request.Context(), id.MentorProfileID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load listings")
		return
	}

	response.Success(c, http.StatusOK, toListingResponses(listings))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
