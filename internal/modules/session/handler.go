package session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mentorhub/internal/pkg/identity"
	"mentorhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions/:id", h.Get)
	rg.PATCH("/sessions/:id/start", h.Start)
	rg.PATCH("/sessions/:id/complete", h.Complete)
	rg.GET("/sessions/mentee/my-sessions", h.ListForMentee)
	rg.GET("/sessions/mentor/my-sessions", h.ListForMentor)
	// Per-role fetch aliases kept for older clients. Both resolve the same
	// party-scoped lookup as /sessions/:id.
	rg.GET("/sessions/mentee/:id", h.Get)
	rg.GET("/sessions/mentor/:id", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	sessionID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	sess, err := h.service.GetForActor(c.Request.Context(), sessionID, actorFrom(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) Start(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	sessionID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	sess, err := h.service.Start(c.Request.Context(), sessionID, actorFrom(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	sessionID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	sess, err := h.service.Complete(c.Request.Context(), sessionID, actorFrom(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) ListForMentee(c *gin.Context) {
	id, ok := identity.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, offset := pagination(c)
	sessions, err := h.service.ListForMentee(c.Request.Context(), id.UserID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load sessions")
		return
	}

	response.Success(c, http.StatusOK, toSessionResponses(sessions))
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
	sessions, err := h.service.ListForMentor(c.Request.Context(), id.MentorProfileID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load sessions")
		return
	}

	response.Success(c, http.StatusOK, toSessionResponses(sessions))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", err.Error())
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
