package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie is the cookie carrying the workflow session id
	SessionCookie = "ai_invoice_session"
	// SessionKey is the gin context key of the workflow session id
	SessionKey = "session_id"
)

// SessionConfig holds configuration for the session cookie middleware
type SessionConfig struct {
	MaxAge int // seconds
	Secure bool
}

// SessionID reads the workflow session id from the request cookie and exposes it
// under SessionKey. Missing or malformed ids are left empty so handlers start a
// new session.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(SessionCookie); err == nil {
			if _, err := uuid.Parse(id); err == nil {
				c.Set(SessionKey, id)
			}
		}
		c.Next()
	}
}

// SetSessionCookie stores the session id on the client
func SetSessionCookie(c *gin.Context, cfg SessionConfig, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, cfg.MaxAge, "/", "", cfg.Secure, true)
	c.Set(SessionKey, id)
}
