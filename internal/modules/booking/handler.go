package booking

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/:id", h.Get)
	rg.PATCH("/bookings/:id/accept", h.Accept)
	rg.PATCH("/bookings/:id/decline", h.Decline)
	rg.PATCH("/bookings/:id/cancel", h.Cancel)
	rg.GET("/bookings/mentee/my-bookings", h.ListForMentee)
	rg.GET("/bookings/mentor/my-bookings", h.ListForMentor)
}

func (h *Handler) Create(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	b, err := h.service.Create(c.Request.Context(), id.UserID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	bookingID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.GetForActor(c.Request.Context(), bookingID, actorFrom(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) Accept(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	bookingID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, session, err := h.service.Accept(c.Request.Context(), bookingID, actorFrom(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AcceptBookingResponse{
		Booking: toBookingResponse(b),
		Session: toSessionSummary(session),
	})
}

func (h *Handler) Decline(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	bookingID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.Decline(c.Request.Context(), bookingID, actorFrom(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	bookingID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), bookingID, actorFrom(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) ListForMentee(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, offset := pagination(c)
	bookings, err := h.service.ListForMentee(c.Request.Context(), id.UserID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, toBookingResponses(bookings))
}

func (h *Handler) ListForMentor(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if !id.IsMentor() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Mentor profile required")
		return
	}

	limit, offset := pagination(c)
	bookings, err := h.service.ListForMentor(c.Request.Context(), id.MentorProfileID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, toBookingResponses(bookings))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusBadRequest, "NOT_AVAILABLE", "The requested slot is not available")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func actorFrom(id identity.Identity) Actor {
	return Actor{UserID: id.UserID, MentorProfileID: id.MentorProfileID}
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
