package identity

import "github.com/gin-gonic/gin"

// GetUserID returns the caller's user id or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
