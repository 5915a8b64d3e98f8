package middleware

import (
	"errors"
	"strings"

	"fileshare-api/internal/database"
	"fileshare-api/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kerimovok/go-pkg-utils/config"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"gorm.io/gorm"
)

// UserContextKey is the locals key under which Protected stores the
// authenticated user.
const UserContextKey = "currentUser"

// Protected verifies the bearer token and resolves it to a user. The
// credential travels with the request; nothing about auth is process-global.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response := httpx.Unauthorized("Missing or malformed authorization header")
			return httpx.SendResponse(c, response)
		}

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(config.GetEnv("JWT_SECRET")), nil
		})
		if err != nil || !parsed.Valid {
			response := httpx.Unauthorized("Invalid or expired token")
			return httpx.SendResponse(c, response)
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response := httpx.Unauthorized("Invalid token subject")
			return httpx.SendResponse(c, response)
		}

		var user models.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response := httpx.Unauthorized("User no longer exists")
				return httpx.SendResponse(c, response)
			}
			response := httpx.InternalServerError("Failed to resolve user", err)
			return httpx.SendResponse(c, response)
		}

		c.Locals(UserContextKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by Protected, or nil on an unprotected
// route.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserContextKey).(*models.User)
	return user
}
