package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mentorhub/internal/domain"
	"mentorhub/internal/pkg/identity"
)

func setupRouter(svc *Service, actor *Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/api/v1")
	if actor != nil {
		grp.Use(func(c *gin.Context) {
			identity.Set(c, actor.UserID, "mentee")
			if actor.MentorProfileID != 0 {
				identity.SetMentorProfile(c, actor.MentorProfileID)
			}
			c.Next()
		})
	}
	NewHandler(svc).RegisterRoutes(grp)
	return r
}

func TestHandlerStart_OK(t *testing.T) {
	svc, repo, _, publisher := newTestService()
	sess := scheduledSession()

	repo.On("GetByID", mock.Anything, sess.ID).Return(sess, nil)
	repo.On("UpdateStatusIf", mock.Anything, sess.ID, domain.SessionScheduled, domain.SessionInProgress).
		Return(int64(1), nil)
	publisher.On("Publish", "session.started", mock.Anything).Return(nil)

	r := setupRouter(svc, &mentorActor)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/501/start", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "in_progress", body.Data.Status)
}

func TestHandlerComplete_MenteeForbidden(t *testing.T) {
	svc, repo, _, _ := newTestService()
	sess := scheduledSession()
	sess.Status = domain.SessionInProgress

	repo.On("GetByID", mock.Anything, sess.ID).Return(sess, nil)

	r := setupRouter(svc, &menteeActor)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/501/complete", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestHandlerComplete_InvalidTransition(t *testing.T) {
	svc, repo, _, _ := newTestService()
	sess := scheduledSession()

	repo.On("GetByID", mock.Anything, sess.ID).Return(sess, nil)

	r := setupRouter(svc, &mentorActor)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/501/complete", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATUS_TRANSITION")
}

func TestHandlerGet_ForeignSessionHidden(t *testing.T) {
	svc, repo, _, _ := newTestService()
	sess := scheduledSession()

	repo.On("GetByID", mock.Anything, sess.ID).Return(sess, nil)

	r := setupRouter(svc, &foreignActor)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/501", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerGet_PerRoleAliases(t *testing.T) {
	svc, repo, _, _ := newTestService()
	sess := scheduledSession()

	repo.On("GetByID", mock.Anything, sess.ID).Return(sess, nil)

	for _, path := range []string{"/api/v1/sessions/mentee/501", "/api/v1/sessions/mentor/501"} {
		r := setupRouter(svc, &menteeActor)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, path)

		var body struct {
			Success bool            `json:"success"`
			Data    SessionResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, sess.ID, body.Data.ID, path)
	}
}

func TestHandlerGet_AliasHidesForeignSession(t *testing.T) {
	svc, repo, _, _ := newTestService()
	sess := scheduledSession()

	repo.On("GetByID", mock.Anything, sess.ID).Return(sess, nil)

	r := setupRouter(svc, &foreignActor)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/mentee/501", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerGet_InvalidID(t *testing.T) {
	svc, _, _, _ := newTestService()

	r := setupRouter(svc, &mentorActor)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Unauthorized(t *testing.T) {
	svc := NewService(new(mockSessionRepo), new(mockNotifier), new(mockPublisher), zap.NewNop())

	r := setupRouter(svc, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/501/start", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandlerListForMentee_OK(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("ListByMentee", mock.Anything, menteeActor.UserID, 20, 0).
		Return([]domain.Session{*scheduledSession()}, nil)

	r := setupRouter(svc, &menteeActor)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/mentee/my-sessions", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    []SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}

func TestHandlerListForMentor_RequiresProfile(t *testing.T) {
	svc, _, _, _ := newTestService()

	r := setupRouter(svc, &menteeActor)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/mentor/my-sessions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
