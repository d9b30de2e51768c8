// internal/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "nexus_session"

// Session assigns each browser a session identifier used to key purchased-ID
// sets. Nothing behind it persists; a fresh cookie simply means a fresh,
// empty UserState.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookie, sessionID, 0, "/", "", false, true)
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}
