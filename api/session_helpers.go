package api

import (
	"net/http"

	"github.com/Domenick1991/flightservice/internal/session"
	"github.com/gin-gonic/gin"
)

const sessionHeader = "X-Session-Token"

func sessionFrom(c *gin.Context, sessions *session.Manager) *session.Session {
	token := c.GetHeader(sessionHeader)
	if token == "" {
		return nil
	}
	s, ok := sessions.Get(token)
	if !ok {
		return nil
	}
	return s
}

// requireSession resolves the token header or writes a 401 and returns nil.
func requireSession(c *gin.Context, sessions *session.Manager) *session.Session {
	s := sessionFrom(c, sessions)
	if s == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
		return nil
	}
	return s
}
