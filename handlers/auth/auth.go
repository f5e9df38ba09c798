package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/utils/auth"
	"github.com/sahilchouksey/edulisting-api/utils/middleware"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles CMS account authentication
type AuthHandler struct {
	db         *gorm.DB
	jwtManager *auth.JWTManager
	validator  *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		db:         db,
		jwtManager: jwtManager,
		validator:  validation.NewValidator(),
	}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ErrorWithMeta(c, fiber.StatusBadRequest,
			"Validation failed", validation.FormatValidationErrors(err))
	}

	var user model.User
	if err := h.db.First(&user, "email = ?", req.Email).Error; err != nil {
		// Same message for unknown email and bad password
		return response.Unauthorized(c, "Invalid credentials")
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return response.Unauthorized(c, "Invalid credentials")
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	return response.SuccessWithMessage(c, "Login successful", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// Profile handles GET /api/v1/auth/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not found")
	}

	return response.Success(c, user)
}

// ChangePassword handles POST /api/v1/auth/change-password. Changing the
// password bumps the token version, invalidating every issued token.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ErrorWithMeta(c, fiber.StatusBadRequest,
			"Validation failed", validation.FormatValidationErrors(err))
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not found")
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	updates := map[string]interface{}{
		"password_hash": hash,
		"token_version": user.TokenVersion + 1,
	}
	if err := h.db.Model(&model.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to change password")
	}

	return response.SuccessWithMessage(c, "Password changed. Please log in again.", nil)
}
