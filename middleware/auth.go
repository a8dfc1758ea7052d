package middleware

import (
	"log"
	"net/http"

	"github.com/alexanderik79/home-work-63/models"
	"github.com/alexanderik79/home-work-63/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session
// token.
const SessionCookie = "session_token"

const userContextKey = "user"

// SessionAuth gates a route group behind a resolved session. A missing,
// invalid or expired cookie is rejected identically with a fixed 401 body;
// on success the resolved user is stored in the gin context.
func SessionAuth(auth *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			log.Println("[PROTECTED] Access denied — not authenticated")
			c.String(http.StatusUnauthorized, "Unauthorized. Please log in.")
			c.Abort()
			return
		}

		user, err := auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			log.Println("[PROTECTED] Session resolution error:", err)
			c.String(http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}
		if user == nil {
			log.Println("[PROTECTED] Access denied — not authenticated")
			c.String(http.StatusUnauthorized, "Unauthorized. Please log in.")
			c.Abort()
			return
		}

		log.Printf("[PROTECTED] Access granted to %s", user.Email)
		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser reads the user the session gate attached to the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
