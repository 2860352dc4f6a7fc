package identity

import "github.com/gin-gonic/gin"

const (
	ctxUserID          = "user_id"
	ctxRole            = "role"
	ctxMentorProfileID = "mentor_profile_id"
)

// Identity is the resolved caller identity. Handlers and services consume this
// instead of reading headers or tokens themselves.
type Identity struct {
	UserID          int64
	Role            string
	MentorProfileID int64 // 0 unless the caller owns a mentor profile
}

func (id Identity) IsMentor() bool {
	return id.MentorProfileID != 0
}

// Set stores the identity on the request context. Called by middleware only.
func Set(c *gin.Context, userID int64, role string) {
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, role)
}

// SetMentorProfile attaches the caller's mentor profile id once resolved.
func SetMentorProfile(c *gin.Context, profileID int64) {
	c.Set(ctxMentorProfileID, profileID)
}

// FromContext returns the identity for the current request. The second return
// is false when no identity was presented at all.
func FromContext(c *gin.Context) (Identity, bool) {
	userID := c.GetInt64(ctxUserID)
	if userID == 0 {
		return Identity{}, false
	}
	return Identity{
		UserID:          userID,
		Role:            c.GetString(ctxRole),
		MentorProfileID: c.GetInt64(ctxMentorProfileID),
	}, true
}
