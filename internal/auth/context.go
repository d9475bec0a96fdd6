package auth

import "github.com/gin-gonic/gin"

// Keys under which the middleware stores the authenticated identity on
// the gin context.
const (
	ContextUserIDKey    = "auth.userID"
	ContextUserEmailKey = "auth.userEmail"
)

// GetUserID returns the authenticated user's ID, or empty string when the
// request carried no valid token.
func GetUserID(c *gin.Context) string {
	return contextString(c, ContextUserIDKey)
}

// GetUserEmail returns the authenticated user's email, or empty string
// when the request carried no valid token.
func GetUserEmail(c *gin.Context) string {
	return contextString(c, ContextUserEmailKey)
}

func contextString(c *gin.Context, key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
