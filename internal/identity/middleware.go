package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the id of the user the gateway authenticated the request for.
const Header = "X-Sharer-User-Id"

// Required is a gin middleware that extracts the caller's user id from the
// X-Sharer-User-Id header. The gateway is trusted to have authenticated the
// caller; this service only validates the id shape.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set("userID", id)
		c.Next()
	}
}
