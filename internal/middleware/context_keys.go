package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated staff user's ID. The private key type
// keeps it from colliding with other context values.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID set by
// AuthMiddleware. The boolean reports whether a user is attached at all,
// which is never the case on the public auth routes.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok
	}
	// Services that only see the request context look it up there.
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok
	}
	return "", false
}
