package api

import (
	"chat_admin/internal/domain"     // Importing domain models
	"chat_admin/internal/middleware" // Principal accessor
	"chat_admin/internal/service"    // Admin operations service
	"net/http"                       // HTTP status codes
	"strings"                        // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for role updates
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"` // New role must be provided
}

// UpdateRoleHandler changes a user's role
func UpdateRoleHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := parseUserID(c)
		if !ok {
			return
		}
		var req UpdateRoleRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := svc.UpdateRole(c.Request.Context(), actor, id, domain.Role(strings.ToUpper(req.Role)))
		if err != nil {
			respondError(c, err) // Invalid role -> 400, absent user -> 404
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "user": user})
	}
}

// Request struct for bans
type BanRequest struct {
	Reason string `json:"reason"` // Optional free-text reason
}

// BanHandler revokes the target's sessions and sets the ban flag
func BanHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := parseUserID(c)
		if !ok {
			return
		}
		var req BanRequest // Reason is optional, so an empty body is fine
		_ = c.ShouldBindJSON(&req)
		if _, err := svc.Ban(c.Request.Context(), actor, id, req.Reason); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User banned successfully"})
	}
}

// UnbanHandler clears the target's ban fields
func UnbanHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := parseUserID(c)
		if !ok {
			return
		}
		if _, err := svc.Unban(c.Request.Context(), actor, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User unbanned successfully"})
	}
}

// DeleteUserHandler runs the cascading delete for the target user
func DeleteUserHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := parseUserID(c)
		if !ok {
			return
		}
		// Admins cannot delete their own account
		if id == actor.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete yourself"})
			return
		}
		if err := svc.DeleteUser(c.Request.Context(), actor, id); err != nil {
			respondError(c, err) // PartialFailure -> 500, user intact for retry
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// Request struct for bulk operations
type BulkRequest struct {
	Action  string `json:"action" binding:"required"`   // ban, unban, delete or role
	UserIDs []uint `json:"user_ids" binding:"required"` // Target user IDs
	Role    string `json:"role"`                        // Only for action "role"
	Reason  string `json:"reason"`                      // Only for action "ban"
}

// BulkActionHandler applies one action to a set of users and reports
// per-target outcomes
func BulkActionHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req BulkRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		result, err := svc.BulkAction(c.Request.Context(), actor, service.BulkInput{
			Action:  req.Action,
			UserIDs: req.UserIDs,
			Role:    domain.Role(strings.ToUpper(req.Role)),
			Reason:  req.Reason,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
