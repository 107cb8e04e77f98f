package middlewares

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/auth"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/sessions"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

const authRequiredMessage = "Authentication required to access this endpoint."

// SessionMiddleware resolves the session cookie into an auth.RequestContext for every request.
// A session pointing to a user that no longer exists is treated as anonymous.
func SessionMiddleware(manager *sessions.Manager, users store.Collection[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, session, err := manager.Load(c.Request)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		rc := &auth.RequestContext{SessionID: id, Session: session}
		if session.UserID != "" {
			user, err := users.FindByID(c.Request.Context(), session.UserID)
			switch {
			case err == nil:
				rc.User = user
			case errors.Is(err, store.ErrNotFound):
				utils.InfoLogger.Debugf("session %s refers to missing user %s", id, session.UserID)
			default:
				c.Error(err)
				c.Abort()
				return
			}
		}

		auth.SetContext(c, rc)
		c.Next()
	}
}

// AuthGate lets authenticated requests through. Anonymous JSON clients get a 401 envelope,
// browsers are redirected to the login page.
func AuthGate(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.FromContext(c).IsAuthenticated() {
			c.Next()
			return
		}

		if WantsJSON(c.Request) {
			utils.RespondError(c, http.StatusUnauthorized, authRequiredMessage)
			c.Abort()
			return
		}

		target := loginPath
		if c.Request.Method == http.MethodGet {
			target += "?returnTo=" + url.QueryEscape(c.Request.URL.RequestURI())
		}
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// WantsJSON -> true jika client meminta JSON (Accept) atau request berasal dari XHR
func WantsJSON(r *http.Request) bool {
	if strings.Contains(strings.ToLower(r.Header.Get("Accept")), "application/json") {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}
