package api

import (
	"chat_admin/internal/service" // Admin operations service
	"chat_admin/internal/utils"   // Cache helpers
	"context"                     // Context for Redis operations
	"net/http"                    // HTTP status codes
	"strconv"                     // String conversion
	"time"                        // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// statsCacheTTL bounds staleness of the cached dashboard aggregation
const statsCacheTTL = 60 * time.Second

// SystemStatsHandler returns the system-wide dashboard statistics
func SystemStatsHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		cacheKey := "admin:stats"
		// Try to get cached response
		var cached service.SystemStats
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"stats": cached, "cached": true})
			return
		}
		stats, err := svc.SystemStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		// Cache the aggregation for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, stats, statsCacheTTL)
		c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": false})
	}
}

// ActivityHandler returns the most recent audit entries
func ActivityHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50 // Default number of entries
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 200 {
				limit = v // Set limit if valid
			}
		}
		entries, err := svc.RecentActivity(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"activity": entries})
	}
}
