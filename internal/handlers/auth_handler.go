package handlers

import (
	"errors"
	"time"

	"fileshare-api/internal/database"
	"fileshare-api/internal/middleware"
	"fileshare-api/internal/models"
	"fileshare-api/internal/repositories"
	"fileshare-api/internal/requests"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kerimovok/go-pkg-utils/config"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"github.com/kerimovok/go-pkg-utils/validator"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles registration, login and the current-user lookup.
type AuthHandler struct {
	users *repositories.UserRepository
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		users: repositories.NewUserRepository(database.DB),
	}
}

// Register creates an account and returns a signed token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input requests.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		response := httpx.BadRequest("Invalid request body", err)
		return httpx.SendResponse(c, response)
	}

	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	if _, err := h.users.FindByEmail(input.Email); err == nil {
		response := httpx.BadRequest("Email is already registered", nil)
		return httpx.SendResponse(c, response)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		response := httpx.InternalServerError("Failed to check existing users", err)
		return httpx.SendResponse(c, response)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		response := httpx.InternalServerError("Failed to hash password", err)
		return httpx.SendResponse(c, response)
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := h.users.Create(&user); err != nil {
		response := httpx.InternalServerError("Failed to create user", err)
		return httpx.SendResponse(c, response)
	}

	token, err := signToken(user.ID)
	if err != nil {
		response := httpx.InternalServerError("Failed to issue token", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.Created("User registered successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
	return httpx.SendResponse(c, response)
}

// Login authenticates an account and returns a signed token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input requests.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		response := httpx.BadRequest("Invalid request body", err)
		return httpx.SendResponse(c, response)
	}

	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	user, err := h.users.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response := httpx.Unauthorized("Invalid email or password")
			return httpx.SendResponse(c, response)
		}
		response := httpx.InternalServerError("Failed to fetch user", err)
		return httpx.SendResponse(c, response)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		response := httpx.Unauthorized("Invalid email or password")
		return httpx.SendResponse(c, response)
	}

	token, err := signToken(user.ID)
	if err != nil {
		response := httpx.InternalServerError("Failed to issue token", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
	return httpx.SendResponse(c, response)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	response := httpx.OK("User retrieved successfully", user)
	return httpx.SendResponse(c, response)
}

// signToken issues an HS256 token carrying the user ID as subject.
func signToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(7 * 24 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GetEnv("JWT_SECRET")))
}
