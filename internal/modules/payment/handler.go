package payment

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

// RegisterPublicRoutes mounts the provider callback, which arrives unauthenticated.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/callback", h.Callback)
}

// RegisterProtectedRoutes mounts the mentee-facing payment endpoints.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/init", h.Init)
	rg.GET("/payments/booking/:bookingId", h.GetForBooking)
	rg.GET("/payments/history", h.History)
}

func (h *Handler) Init(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	resp, err := h.service.Init(c.Request.Context(), id.UserID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid callback payload")
		return
	}

	if err := h.service.HandleCallback(c.Request.Context(), req); err != nil {
		h.respondError(c, err)
		return
	}

	// Providers expect a plain OK body to stop retrying.
	c.String(http.StatusOK, "OK%d", req.InvID)
}

func (h *Handler) GetForBooking(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	p, err := h.service.GetForBooking(c.Request.Context(), id.UserID, bookingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toPaymentResponse(p))
}

func (h *Handler) History(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	payments, err := h.service.History(c.Request.Context(), id.UserID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load payments")
		return
	}

	response.Success(c, http.StatusOK, toPaymentResponses(payments))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Signature verification failed")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusBadRequest, "INVALID_STATE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
