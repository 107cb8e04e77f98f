package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Accept, Origin, Cache-Control, X-Requested-With, X-CSRF-Token"
)

// CORSPolicy lists the frontends allowed to call the API with the session cookie.
type CORSPolicy struct {
	Origins []string
	MaxAge  time.Duration
}

func (p CORSPolicy) allows(origin string) bool {
	for _, o := range p.Origins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// CORSMiddlewares -> echo Origin hanya jika terdaftar; preflight dijawab 204
func CORSMiddlewares(policy CORSPolicy) gin.HandlerFunc {
	maxAge := strconv.Itoa(int(policy.MaxAge.Seconds()))

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		allowed := origin != "" && policy.allows(origin)
		if allowed {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		if allowed && c.GetHeader("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			if policy.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
