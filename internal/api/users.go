package api

import (
	"chat_admin/internal/domain"     // Importing domain models
	"chat_admin/internal/middleware" // Principal accessor
	"chat_admin/internal/repository" // Filter and sort types
	"chat_admin/internal/service"    // Admin operations service
	"chat_admin/internal/utils"      // Cache helpers
	"context"                        // Context for Redis operations
	"net/http"                       // HTTP status codes
	"strconv"                        // String conversion
	"strings"                        // String manipulation
	"time"                           // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// listCacheTTL bounds staleness of the cached user listing
const listCacheTTL = 60 * time.Second

// parseUserID extracts the :id path parameter
func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// ListUsersHandler returns a filtered, sorted, paginated user listing with
// per-user usage stats
func ListUsersHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Build cache key from all query params
		var keyParts []string // Parts of the cache key
		for _, k := range []string{"page", "limit", "sortBy", "sortOrder", "role", "status", "search"} {
			keyParts = append(keyParts, k+"="+c.DefaultQuery(k, "")) // Append key-value pair
		}
		cacheKey := "admin:users:" + strings.Join(keyParts, ":")
		// Try to get cached response
		var cached service.UserPage
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,      // List of users with stats
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of users
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("limit"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		// Build the listing filter from query params
		var filter repository.UserFilter
		if role := c.Query("role"); role != "" {
			r := domain.Role(strings.ToUpper(role))
			if !r.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role filter"})
				return
			}
			filter.Role = &r
		}
		switch c.Query("status") {
		case "banned":
			banned := true
			filter.Banned = &banned
		case "active":
			banned := false
			filter.Banned = &banned
		case "":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		filter.Search = c.Query("search")
		sort := repository.UserSort{
			Field: c.DefaultQuery("sortBy", "created_at"),
			Desc:  c.DefaultQuery("sortOrder", "desc") == "desc",
		}
		result, err := svc.ListUsers(c.Request.Context(), filter, sort, page, pageSize)
		if err != nil {
			respondError(c, err) // Map typed failures onto HTTP
			return
		}
		// Cache the page for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, result, listCacheTTL)
		c.JSON(http.StatusOK, gin.H{
			"users":       result.Users,      // List of users with stats
			"page":        result.Page,       // Current page
			"page_size":   result.PageSize,   // Page size
			"total":       result.Total,      // Total number of users
			"total_pages": result.TotalPages, // Total pages
			"cached":      false,             // Indicate response is not from cache
		})
	}
}

// SearchUsersHandler finds up to 20 users matching the q parameter
func SearchUsersHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, err) // Short queries surface as 400
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// UserStatsHandler returns one user with usage counters and recent activity
func UserStatsHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUserID(c)
		if !ok {
			return
		}
		stats, err := svc.UserStats(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// Request struct for admin user creation
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Name     string `json:"name" binding:"required"`        // Display name must be provided
	Username string `json:"username"`                       // Optional username
	Password string `json:"password" binding:"required"`    // Password must be provided
	Role     string `json:"role"`                           // Optional role, defaults to USER
}

// CreateUserHandler provisions an account on behalf of the acting admin
func CreateUserHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate password length before hashing
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-128 characters"})
			return
		}
		user, err := svc.CreateUser(c.Request.Context(), actor, service.CreateUserInput{
			Email:    req.Email,
			Name:     req.Name,
			Username: req.Username,
			Password: req.Password,
			Role:     domain.Role(strings.ToUpper(req.Role)),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
	}
}
