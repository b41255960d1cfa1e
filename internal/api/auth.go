package api

import (
	"chat_admin/internal/config"     // Configuration
	"chat_admin/internal/domain"     // Importing domain models
	"chat_admin/internal/repository" // Repository layer
	"chat_admin/internal/utils"      // Utility functions
	"net/http"                       // HTTP status codes
	"regexp"                         // Regular expressions
	"strings"                        // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Request struct for registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Name     string `json:"name" binding:"required"`        // Display name must be provided
	Username string `json:"username"`                       // Optional username
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token        string `json:"token"`         // JWT access token
	RefreshToken string `json:"refresh_token"` // Opaque session refresh token
}

// isValidUsername checks if the username contains only alphanumeric characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z0-9]+$`, username) // Alphanumeric only
	return matched                                               // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 128 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 128 // Return true if length is valid
}

// RegisterHandler creates a new user account
func RegisterHandler(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate optional username
		if req.Username != "" && !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be alphanumeric only"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-128 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Create user with lowercase email to ensure uniqueness
		user := domain.User{
			Email:    strings.ToLower(req.Email),
			Name:     req.Name,
			Password: string(hash),
			Role:     domain.RoleUser,
		}
		if req.Username != "" {
			username := strings.ToLower(req.Username)
			user.Username = &username
		}
		// Attempt to create the user in the database
		if err := users.Create(c.Request.Context(), &user); err != nil {
			// Duplicate email surfaces as a typed error
			respondError(c, err)
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user, opens a session and returns a JWT token
func LoginHandler(users repository.UserRepository, sessions repository.SessionRepository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.FindByEmail(c.Request.Context(), req.Email) // Fetch user by email
		if err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Banned accounts cannot open new sessions
		if user.Banned {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is banned"})
			return
		}
		// Open a revocable session for the refresh token
		session, err := sessions.Create(c.Request.Context(), user.ID, cfg.SessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the tokens in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, RefreshToken: session.Token})
	}
}
