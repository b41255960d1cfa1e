package api

import (
	"chat_admin/internal/config"     // Configuration
	"chat_admin/internal/middleware" // Auth middlewares
	"chat_admin/internal/repository" // Repository layer
	"chat_admin/internal/service"    // Admin operations service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// RegisterRoutes mounts the public auth endpoints and the guarded admin API.
// Admin routes sit behind the JWT middleware and the admin-role gate.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	svc *service.AdminService,
	users repository.UserRepository,
	sessions repository.SessionRepository,
) {
	// Auth routes
	r.POST("/user", RegisterHandler(users))              // Registration endpoint
	r.GET("/user", LoginHandler(users, sessions, cfg))   // Login endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", ListUsersHandler(svc, rdb))        // Paginated user listing
	adminGroup.POST("/users", CreateUserHandler(svc))           // Admin user creation
	adminGroup.GET("/search", SearchUsersHandler(svc))          // User search, capped at 20
	adminGroup.GET("/users/:id/stats", UserStatsHandler(svc))   // Per-user stats
	adminGroup.PUT("/users/:id/role", UpdateRoleHandler(svc))   // Role change
	adminGroup.POST("/users/:id/ban", BanHandler(svc))          // Ban
	adminGroup.POST("/users/:id/unban", UnbanHandler(svc))      // Unban
	adminGroup.DELETE("/users/:id", DeleteUserHandler(svc))     // Cascading delete
	adminGroup.POST("/bulk", BulkActionHandler(svc))            // Bulk operations
	adminGroup.GET("/stats", SystemStatsHandler(svc, rdb))      // Dashboard statistics
	adminGroup.GET("/activity", ActivityHandler(svc))           // Recent audit entries
}
