package middleware

import (
	"chat_admin/internal/domain" // Importing domain models
	"net/http"                   // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// PrincipalKey is the gin context key holding the authenticated admin user
const PrincipalKey = "principal"

// AdminOnlyMiddleware checks the user's role from the database on each request
// and attaches the loaded principal to the context for downstream handlers
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found or any error, abort with unauthorized status:
			// the credential references a principal that no longer exists
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check if user role is the elevated role and the account is usable
		if user.Role != domain.RoleAdmin || user.Banned {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Set(PrincipalKey, &user) // Attach the principal for handlers
		c.Next()                   // Proceed to the next handler
	}
}

// Principal returns the admin user attached by AdminOnlyMiddleware
func Principal(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
