package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/sessions"
)

const contextKey = "auth.requestContext"

// RequestContext is the per-request view of the session: its id, its state and the resolved
// user (nil when nobody is signed in).
type RequestContext struct {
	SessionID string
	Session   *sessions.Session
	User      *models.User
}

func (rc *RequestContext) IsAuthenticated() bool {
	return rc != nil && rc.User != nil
}

func SetContext(c *gin.Context, rc *RequestContext) {
	c.Set(contextKey, rc)
}

// FromContext returns the request context set by the session middleware, or an anonymous one.
func FromContext(c *gin.Context) *RequestContext {
	if v, ok := c.Get(contextKey); ok {
		if rc, ok := v.(*RequestContext); ok && rc != nil {
			return rc
		}
	}
	return &RequestContext{Session: &sessions.Session{}}
}
