package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/utils/auth"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"gorm.io/gorm"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	db         *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		db:         db,
	}
}

// authenticate validates the bearer token and stores the user in the request
// context. When it rejects the request it writes the response itself and
// reports ok=false.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (bool, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return false, response.Unauthorized(c, "Missing authorization token")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if err == auth.ErrExpiredToken {
			return false, response.Unauthorized(c, "Token has expired")
		}
		return false, response.Unauthorized(c, "Invalid token")
	}

	// Load user and verify token version
	var user model.User
	if err := m.db.First(&user, claims.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, response.Unauthorized(c, "User not found")
		}
		return false, response.InternalServerError(c, "Failed to load user")
	}

	if user.TokenVersion != claims.TokenVersion {
		return false, response.Unauthorized(c, "Token has been invalidated")
	}

	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("user_role", user.Role)
	c.Locals("user", &user)

	return true, nil
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := m.authenticate(c)
		if !ok {
			return err
		}
		return c.Next()
	}
}

// RequireAdmin requires a valid token belonging to an admin account
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := m.authenticate(c)
		if !ok {
			return err
		}
		if role, _ := c.Locals("user_role").(string); role != "admin" {
			return response.Forbidden(c, "Only administrators can perform this action")
		}
		return c.Next()
	}
}

// GetUser extracts the authenticated user from the request context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user, ok := c.Locals("user").(*model.User)
	return user, ok
}
