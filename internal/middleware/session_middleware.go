package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie    = "session_id"
	SessionHeader    = "X-Session-ID"
	sessionCookieAge = 60 * 60 * 24 * 30
)

// SessionMiddleware resolves the storefront session ID from cookie or
// header, minting one for first-time visitors. Handlers read it via
// c.GetString("session_id"); an empty value means the request runs
// against the unavailable store.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = c.GetHeader(SessionHeader)
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, sessionCookieAge, "/", "", false, true)
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}
