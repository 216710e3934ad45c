package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/pkg/apperrors"
)

const (
	ContextUserKey = "user"
	basicChallenge = `Basic realm="logvault"`
)

type Authenticator interface {
	Authenticate(username, password string) (string, bool)
}

// BasicAuth rejects requests without valid basic credentials. The response
// never says which of the two fields was wrong.
func BasicAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, pass, ok := c.Request.BasicAuth(); ok {
			if identity, ok := authn.Authenticate(user, pass); ok {
				c.Set(ContextUserKey, identity)
				c.Next()
				return
			}
		}
		c.Header("WWW-Authenticate", basicChallenge)
		_ = c.Error(apperrors.NewUnauthorized("Invalid authentication credentials"))
		c.Abort()
	}
}
